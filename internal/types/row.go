package types

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/samber/mo"
)

// Kind identifies the storage class of a column value.
type Kind byte

const (
	KindNull Kind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Column is a single named value of a Row.
type Column struct {
	Name  string
	Value any
}

// Row is an ordered mapping of column name to value, in the order the
// columns were produced by the engine. An empty Row means no row is present.
type Row []Column

// NewRow builds a row from alternating name, value pairs. It panics on an
// odd number of arguments or a non string name.
func NewRow(pairs ...any) Row {
	if len(pairs)%2 != 0 {
		panic("types.NewRow: odd number of arguments")
	}
	r := make(Row, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("types.NewRow: column name at %d is %T, not string", i, pairs[i]))
		}
		r = r.Set(name, pairs[i+1])
	}
	return r
}

// Normalize converts v into one of the value types a Row stores:
// nil, int64, float64, string, []byte or bool.
func Normalize(v any) (any, Kind, bool) {
	switch t := v.(type) {
	case nil:
		return nil, KindNull, true
	case int64:
		return t, KindInteger, true
	case int:
		return int64(t), KindInteger, true
	case int8:
		return int64(t), KindInteger, true
	case int16:
		return int64(t), KindInteger, true
	case int32:
		return int64(t), KindInteger, true
	case uint8:
		return int64(t), KindInteger, true
	case uint16:
		return int64(t), KindInteger, true
	case uint32:
		return int64(t), KindInteger, true
	case float64:
		return t, KindReal, true
	case float32:
		return float64(t), KindReal, true
	case string:
		return t, KindText, true
	case []byte:
		return t, KindBlob, true
	case bool:
		return t, KindBool, true
	default:
		return v, KindNull, false
	}
}

// KindOf reports the Kind of an already normalized value.
func KindOf(v any) (Kind, bool) {
	_, k, ok := Normalize(v)
	return k, ok
}

func (r Row) Len() int {
	return len(r)
}

func (r Row) IsEmpty() bool {
	return len(r) == 0
}

// Get returns the value stored under name.
func (r Row) Get(name string) mo.Option[any] {
	for _, c := range r {
		if c.Name == name {
			return mo.Some(c.Value)
		}
	}
	return mo.None[any]()
}

// Set replaces the value of an existing column in place, or appends a new
// column at the end. Values are normalized, unknown types are kept as is.
func (r Row) Set(name string, value any) Row {
	value, _, _ = Normalize(value)
	for i := range r {
		if r[i].Name == name {
			r[i].Value = value
			return r
		}
	}
	return append(r, Column{Name: name, Value: value})
}

func (r Row) Names() []string {
	names := make([]string, len(r))
	for i, c := range r {
		names[i] = c.Name
	}
	return names
}

func (r Row) Values() []any {
	values := make([]any, len(r))
	for i, c := range r {
		values[i] = c.Value
	}
	return values
}

// Clone returns a deep copy; blob values are copied too.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for i, c := range r {
		if b, ok := c.Value.([]byte); ok {
			c.Value = bytes.Clone(b)
		}
		out[i] = c
	}
	return out
}

// Equal reports whether both rows hold the same columns in the same order.
func (r Row) Equal(other Row) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i].Name != other[i].Name {
			return false
		}
		if !reflect.DeepEqual(r[i].Value, other[i].Value) {
			return false
		}
	}
	return true
}

func (r Row) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Name)
		b.WriteString(": ")
		switch v := c.Value.(type) {
		case nil:
			b.WriteString("NULL")
		case string:
			fmt.Fprintf(&b, "%q", v)
		case []byte:
			fmt.Fprintf(&b, "x'%x'", v)
		default:
			fmt.Fprintf(&b, "%v", v)
		}
	}
	b.WriteByte('}')
	return b.String()
}
