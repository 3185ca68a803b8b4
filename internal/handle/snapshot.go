package handle

import (
	"github.com/octris/octodb/internal/types"
)

// Snapshot is a rewindable handle over rows captured when the query ran.
type Snapshot struct {
	rows   []types.Row
	index  int
	closed bool
}

func NewSnapshot(rows ...types.Row) *Snapshot {
	return &Snapshot{rows: rows}
}

func (s *Snapshot) FetchNext() (types.Row, bool) {
	if s.closed || s.index >= len(s.rows) {
		return nil, false
	}
	row := s.rows[s.index]
	s.index++
	return row, true
}

// Reset moves the read position back before the first row.
func (s *Snapshot) Reset() error {
	if s.closed {
		return ErrClosed
	}
	s.index = 0
	return nil
}

func (s *Snapshot) Close() error {
	s.closed = true
	s.rows = nil
	return nil
}
