package segment

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/octris/octodb/internal/types"
)

var (
	ErrCorruptRow       = errors.New("corrupt row")
	ErrUnsupportedValue = errors.New("unsupported column value")
)

var v0RowCodec v0Codec

// v0Codec encodes a types.Row using the `v0` layout:
//
//	|----------------------------------------------------------------------|
//	| uint16  | per column                                                 |
//	|---------|------------------------------------------------------------|
//	| columns | uint16 nameLen | name | uint8 kind | payload               |
//	|----------------------------------------------------------------------|
//
// | Kind    | Payload                      |
// |---------|------------------------------|
// | null    | none                         |
// | integer | int64, big endian            |
// | real    | float64 bits, big endian     |
// | bool    | uint8, 0 or 1                |
// | text    | uint32 len + utf8 bytes      |
// | blob    | uint32 len + bytes           |
type v0Codec struct{}

func (v0Codec) Size(r types.Row) (int, error) {
	size := 2
	for _, c := range r {
		if len(c.Name) > math.MaxUint16 {
			return 0, fmt.Errorf("%w: column name of %d bytes", ErrUnsupportedValue, len(c.Name))
		}
		size += 2 + len(c.Name) + 1
		kind, ok := types.KindOf(c.Value)
		if !ok {
			return 0, fmt.Errorf("%w: column %q holds %T", ErrUnsupportedValue, c.Name, c.Value)
		}
		switch kind {
		case types.KindInteger, types.KindReal:
			size += 8
		case types.KindBool:
			size++
		case types.KindText:
			size += 4 + len(c.Value.(string))
		case types.KindBlob:
			size += 4 + len(c.Value.([]byte))
		}
	}
	return size, nil
}

// Encode appends the encoded row to dst.
func (c v0Codec) Encode(dst []byte, r types.Row) ([]byte, error) {
	if len(r) > math.MaxUint16 {
		return dst, fmt.Errorf("%w: row with %d columns", ErrUnsupportedValue, len(r))
	}
	size, err := c.Size(r)
	if err != nil {
		return dst, err
	}

	offset := len(dst)
	dst = append(dst, make([]byte, size)...)
	out := dst[offset:]
	var off int

	binary.BigEndian.PutUint16(out[off:], uint16(len(r)))
	off += 2

	for _, col := range r {
		binary.BigEndian.PutUint16(out[off:], uint16(len(col.Name)))
		off += 2
		off += copy(out[off:], col.Name)

		value, kind, _ := types.Normalize(col.Value)
		out[off] = byte(kind)
		off++

		switch kind {
		case types.KindInteger:
			binary.BigEndian.PutUint64(out[off:], uint64(value.(int64)))
			off += 8
		case types.KindReal:
			binary.BigEndian.PutUint64(out[off:], math.Float64bits(value.(float64)))
			off += 8
		case types.KindBool:
			if value.(bool) {
				out[off] = 1
			}
			off++
		case types.KindText:
			s := value.(string)
			binary.BigEndian.PutUint32(out[off:], uint32(len(s)))
			off += 4
			off += copy(out[off:], s)
		case types.KindBlob:
			b := value.([]byte)
			binary.BigEndian.PutUint32(out[off:], uint32(len(b)))
			off += 4
			off += copy(out[off:], b)
		}
	}
	return dst, nil
}

// Decode reads one row from the front of data and returns it with the
// number of bytes consumed.
func (v0Codec) Decode(data []byte) (types.Row, int, error) {
	if len(data) < 2 {
		return nil, 0, fmt.Errorf("%w: data too short for column count", ErrCorruptRow)
	}
	var off int
	count := int(binary.BigEndian.Uint16(data))
	off += 2

	row := make(types.Row, 0, count)
	for i := 0; i < count; i++ {
		if len(data[off:]) < 2 {
			return nil, 0, fmt.Errorf("%w: column %d: data too short for name length", ErrCorruptRow, i)
		}
		nameLen := int(binary.BigEndian.Uint16(data[off:]))
		off += 2
		if len(data[off:]) < nameLen+1 {
			return nil, 0, fmt.Errorf("%w: column %d: name exceeds data", ErrCorruptRow, i)
		}
		name := string(data[off : off+nameLen])
		off += nameLen
		kind := types.Kind(data[off])
		off++

		var value any
		switch kind {
		case types.KindNull:
		case types.KindInteger, types.KindReal:
			if len(data[off:]) < 8 {
				return nil, 0, fmt.Errorf("%w: column %q: data too short for %s", ErrCorruptRow, name, kind)
			}
			bits := binary.BigEndian.Uint64(data[off:])
			off += 8
			if kind == types.KindInteger {
				value = int64(bits)
			} else {
				value = math.Float64frombits(bits)
			}
		case types.KindBool:
			if len(data[off:]) < 1 {
				return nil, 0, fmt.Errorf("%w: column %q: data too short for bool", ErrCorruptRow, name)
			}
			value = data[off] != 0
			off++
		case types.KindText, types.KindBlob:
			if len(data[off:]) < 4 {
				return nil, 0, fmt.Errorf("%w: column %q: data too short for length", ErrCorruptRow, name)
			}
			n := int(binary.BigEndian.Uint32(data[off:]))
			off += 4
			if len(data[off:]) < n {
				return nil, 0, fmt.Errorf("%w: column %q: %s exceeds data", ErrCorruptRow, name, kind)
			}
			if kind == types.KindText {
				value = string(data[off : off+n])
			} else {
				b := make([]byte, n)
				copy(b, data[off:off+n])
				value = b
			}
			off += n
		default:
			return nil, 0, fmt.Errorf("%w: column %q: unknown kind %d", ErrCorruptRow, name, kind)
		}
		row = append(row, types.Column{Name: name, Value: value})
	}
	return row, off, nil
}

// EncodeRow encodes a single row, as stored by the bolt backed engine.
func EncodeRow(r types.Row) ([]byte, error) {
	return v0RowCodec.Encode(nil, r)
}

// DecodeRow decodes a value produced by EncodeRow. Trailing bytes are an error.
func DecodeRow(data []byte) (types.Row, error) {
	row, n, err := v0RowCodec.Decode(data)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptRow, len(data)-n)
	}
	return row, nil
}
