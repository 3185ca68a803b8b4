package handle

import (
	"fmt"

	"github.com/boltdb/bolt"

	"github.com/octris/octodb/internal/segment"
	"github.com/octris/octodb/internal/types"
)

// Bolt iterates the rows of one bolt bucket inside a read transaction held
// for the life of the handle. The transaction is released by Close.
type Bolt struct {
	tx      *bolt.Tx
	cursor  *bolt.Cursor
	started bool
	done    bool
	warn    types.ErrWarn
}

// NewBolt opens a read transaction on db. The bucket must exist.
func NewBolt(db *bolt.DB, bucket string) (*Bolt, error) {
	tx, err := db.Begin(false)
	if err != nil {
		return nil, fmt.Errorf("while opening read transaction: %w", err)
	}
	b := tx.Bucket([]byte(bucket))
	if b == nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("%w: %s", types.ErrCollectionNotFound, bucket)
	}
	return &Bolt{tx: tx, cursor: b.Cursor()}, nil
}

func (h *Bolt) FetchNext() (types.Row, bool) {
	if h.tx == nil || h.done {
		return nil, false
	}

	var k, v []byte
	if !h.started {
		k, v = h.cursor.First()
		h.started = true
	} else {
		k, v = h.cursor.Next()
	}
	if k == nil {
		h.done = true
		return nil, false
	}

	row, err := segment.DecodeRow(v)
	if err != nil {
		h.warn.Add("row %q: %s", k, err)
		h.done = true
		return nil, false
	}
	return row, true
}

// Reset seeks the bucket cursor back to the first key.
func (h *Bolt) Reset() error {
	if h.tx == nil {
		return ErrClosed
	}
	h.started = false
	h.done = false
	return nil
}

func (h *Bolt) Close() error {
	if h.tx == nil {
		return nil
	}
	err := h.tx.Rollback()
	h.tx = nil
	h.cursor = nil
	return err
}

func (h *Bolt) Warnings() *types.ErrWarn {
	return &h.warn
}
