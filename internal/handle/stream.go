package handle

import (
	"errors"
	"io"

	"github.com/gammazero/deque"

	"github.com/octris/octodb/internal/types"
)

// Source yields rows until io.EOF. segment.Reader is the usual source.
type Source interface {
	Next() (types.Row, error)
}

// Stream is a forward-only handle. Rows are decoded from the source in
// batches of readAhead and buffered until fetched.
type Stream struct {
	src       Source
	buf       *deque.Deque[types.Row]
	readAhead int
	done      bool
	closed    bool
	warn      types.ErrWarn
}

func NewStream(src Source, readAhead int) *Stream {
	if readAhead < 1 {
		readAhead = 1
	}
	return &Stream{
		src:       src,
		buf:       deque.New[types.Row](readAhead),
		readAhead: readAhead,
	}
}

func (s *Stream) FetchNext() (types.Row, bool) {
	if s.closed {
		return nil, false
	}
	if s.buf.Len() == 0 {
		s.fill()
	}
	if s.buf.Len() == 0 {
		return nil, false
	}
	return s.buf.PopFront(), true
}

func (s *Stream) fill() {
	for !s.done && s.buf.Len() < s.readAhead {
		row, err := s.src.Next()
		if err != nil {
			s.done = true
			if !errors.Is(err, io.EOF) {
				s.warn.Add("stream stopped: %s", err)
			}
			return
		}
		s.buf.PushBack(row)
	}
}

// Reset always fails; a stream cannot seek back to its first row.
func (s *Stream) Reset() error {
	return &types.UnsupportedOperationError{Op: "reset", Reason: "forward-only stream"}
}

func (s *Stream) ForwardOnly() bool {
	return true
}

func (s *Stream) Close() error {
	s.closed = true
	s.buf.Clear()
	if c, ok := s.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Stream) Warnings() *types.ErrWarn {
	return &s.warn
}
