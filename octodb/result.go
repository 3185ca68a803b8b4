package octodb

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/kapetan-io/tackle/set"
	"github.com/samber/mo"

	"github.com/octris/octodb/internal/handle"
	"github.com/octris/octodb/internal/types"
	"github.com/octris/octodb/octodb/config"
)

// Row is an ordered mapping of column name to value.
type Row = types.Row

// Column is one named value of a Row.
type Column = types.Column

// NewRow builds a Row from alternating name, value pairs.
func NewRow(pairs ...any) Row {
	return types.NewRow(pairs...)
}

// ResultHandle is the engine side of a result set, positioned before its
// first row when handed to a cursor.
type ResultHandle interface {
	// FetchNext returns the next physical row, or false once the result is
	// exhausted or the engine failed to produce a row.
	FetchNext() (Row, bool)

	// Reset moves the read position back before the first row. Handles that
	// cannot reposition return an *UnsupportedOperationError and must not
	// change their read position.
	Reset() error

	// Close releases the engine resources held by the handle.
	Close() error
}

// Shape turns the buffered row into the value Current returns. It is picked
// once, when the cursor is built.
type Shape[T any] interface {
	Collection() mo.Option[string]
	Build(row Row) (T, error)
}

type rawShape struct{}

func (rawShape) Collection() mo.Option[string] {
	return mo.None[string]()
}

func (rawShape) Build(row Row) (Row, error) {
	return row.Clone(), nil
}

type boundShape[T any] struct {
	device       *Device
	collection   string
	materializer Materializer[T]
}

func (s boundShape[T]) Collection() mo.Option[string] {
	return mo.Some(s.collection)
}

// Build hands the materializer its own copy, so writes to the row never
// reach the buffered row or the engine's storage.
func (s boundShape[T]) Build(row Row) (T, error) {
	return s.materializer.Materialize(s.device, s.collection, row.Clone())
}

// State is the position of a cursor relative to its rows.
type State int

const (
	// BeforeFirst is a new or rewound cursor; Valid was not called yet.
	BeforeFirst State = iota
	// OnRow means the last Valid returned true and a row is buffered.
	OnRow
	// Exhausted means the last Valid returned false or the cursor is closed.
	Exhausted
)

func (s State) String() string {
	switch s {
	case BeforeFirst:
		return "before-first"
	case OnRow:
		return "on-row"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ------------------------------------------------
// Result
// ------------------------------------------------

// Result is a forward cursor over the rows of one executed query.
//
// Rows are visited with the valid, current, next loop:
//
//	for res.Valid() {
//		item, err := res.Current()
//		...
//		res.Next()
//	}
//
// Valid fetches a row from the engine on every call, so it must be paired
// with exactly one Next. Calling Valid twice in a row skips a row. All wraps
// the loop for use with range.
//
// A Result is not safe for concurrent use. It owns one traversal of its
// handle; callers that share it between goroutines must lock around it, or
// open one Result per goroutine. Always Close a Result, or hand it to
// ForEach or Collect which close it for you.
type Result[T any] struct {
	handle   ResultHandle
	shape    Shape[T]
	row      Row
	position uint64
	state    State
	closed   bool
	log      *slog.Logger
}

// NewResult wraps h in a cursor that returns rows as they come from the engine.
func NewResult(h ResultHandle, opts config.ResultOptions) *Result[Row] {
	return NewResultWithShape[Row](h, rawShape{}, opts)
}

// NewBoundResult wraps h in a cursor bound to collection; Current builds an
// object with m for every row.
func NewBoundResult[T any](h ResultHandle, d *Device, collection string,
	m Materializer[T], opts config.ResultOptions) *Result[T] {
	return NewResultWithShape[T](h, boundShape[T]{device: d, collection: collection, materializer: m}, opts)
}

// NewResultWithShape wraps h in a cursor whose Current builds values with shape.
func NewResultWithShape[T any](h ResultHandle, shape Shape[T], opts config.ResultOptions) *Result[T] {
	set.Default(&opts.Log, config.DefaultResultOptions().Log)
	return &Result[T]{
		handle: h,
		shape:  shape,
		state:  BeforeFirst,
		log:    opts.Log,
	}
}

// Rewind resets the cursor to the first row. Handles that cannot seek back
// make it return an *UnsupportedOperationError; the cursor is then left
// exactly as it was.
func (r *Result[T]) Rewind() error {
	if r.closed {
		return ErrResultClosed
	}

	if err := r.handle.Reset(); err != nil {
		r.log.Warn("result handle refused to rewind",
			"collection", r.shape.Collection().OrEmpty(),
			"position", r.position,
			"error", err)

		var unsupported *UnsupportedOperationError
		if errors.As(err, &unsupported) {
			return &UnsupportedOperationError{Op: "rewind", Reason: unsupported.Reason}
		}
		return fmt.Errorf("while rewinding result: %w", err)
	}

	r.position = 0
	r.row = nil
	r.state = BeforeFirst
	return nil
}

// Valid fetches the next row from the handle and reports whether there was one.
func (r *Result[T]) Valid() bool {
	row, ok := r.fetch()
	if !ok {
		r.row = nil
		r.state = Exhausted
		return false
	}
	r.row = row
	r.state = OnRow
	return true
}

func (r *Result[T]) fetch() (Row, bool) {
	if r.closed {
		return nil, false
	}
	return r.handle.FetchNext()
}

// Current returns the row the last Valid call moved onto, as a raw Row for
// unbound cursors or as a materialized object for bound ones. It is absent
// when the last Valid reported false or Valid was not called yet.
// Materializer errors are returned as is.
func (r *Result[T]) Current() (mo.Option[T], error) {
	if r.state != OnRow {
		return mo.None[T](), nil
	}
	v, err := r.shape.Build(r.row)
	if err != nil {
		return mo.None[T](), err
	}
	return mo.Some(v), nil
}

// Next advances the position counter. The row itself is fetched by Valid.
func (r *Result[T]) Next() {
	r.position++
}

// Key always returns None; the engine has no stable per-row identity.
func (r *Result[T]) Key() mo.Option[string] {
	return mo.None[string]()
}

// Position returns the number of Next calls since the last rewind.
func (r *Result[T]) Position() uint64 {
	return r.position
}

// State reports where the cursor stands relative to its rows.
func (r *Result[T]) State() State {
	return r.state
}

// Collection returns the collection rows are bound to, if any.
func (r *Result[T]) Collection() mo.Option[string] {
	return r.shape.Collection()
}

// Warnings returns fetch failures the handle reported as end of rows.
func (r *Result[T]) Warnings() *ErrWarn {
	if w, ok := r.handle.(handle.Warner); ok {
		return w.Warnings()
	}
	return &ErrWarn{}
}

// All iterates the remaining rows. Iteration stops after the first
// materializer error, which is yielded with a zero value.
func (r *Result[T]) All() iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for ; r.Valid(); r.Next() {
			item, err := r.Current()
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !yield(item.MustGet(), nil) {
				return
			}
		}
	}
}

// Close releases the handle. It is safe to call more than once.
func (r *Result[T]) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.row = nil
	r.state = Exhausted
	r.log.Debug("result closed", "collection", r.shape.Collection().OrEmpty(), "position", r.position)
	return r.handle.Close()
}

// ForEach calls fn for every remaining row and closes r, also when fn fails
// or returns early. Returning ErrBreak from fn stops without an error.
func ForEach[T any](r *Result[T], fn func(T) error) (err error) {
	defer func() {
		if cErr := r.Close(); err == nil {
			err = cErr
		}
	}()

	for item, iErr := range r.All() {
		if iErr != nil {
			return iErr
		}
		if fErr := fn(item); fErr != nil {
			if errors.Is(fErr, ErrBreak) {
				return nil
			}
			return fErr
		}
	}
	return nil
}

// Collect drains r into a slice and closes it.
func Collect[T any](r *Result[T]) ([]T, error) {
	var items []T
	err := ForEach(r, func(item T) error {
		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
