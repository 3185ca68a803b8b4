package handle

import (
	"errors"

	"github.com/octris/octodb/internal/types"
)

// Chain yields the rows of each handle in turn. It can be reset only when
// every chained handle can.
type Chain struct {
	handles []Handle
	current int
	failed  types.ErrWarn
	warn    types.ErrWarn
}

func NewChain(handles ...Handle) *Chain {
	return &Chain{handles: handles}
}

func (c *Chain) FetchNext() (types.Row, bool) {
	for c.current < len(c.handles) {
		if row, ok := c.handles[c.current].FetchNext(); ok {
			return row, true
		}
		c.current++
	}
	return nil, false
}

// Reset resets every chained handle. A forward-only handle is detected
// before anything is reset, so the chain refuses without moving.
//
// A rewindable handle can still fail its Reset, after the handles before it
// were already reset. The chain cannot go back to a consistent position
// then, so it ends: FetchNext reports no more rows and a warning is kept.
func (c *Chain) Reset() error {
	for _, h := range c.handles {
		if f, ok := h.(ForwardOnly); ok && f.ForwardOnly() {
			return h.Reset()
		}
	}
	for i, h := range c.handles {
		if err := h.Reset(); err != nil {
			c.current = len(c.handles)
			c.failed.Add("reset of chained handle %d failed: %s", i, err)
			return err
		}
	}
	c.current = 0
	return nil
}

func (c *Chain) Close() error {
	var errs []error
	for _, h := range c.handles {
		if err := h.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.current = len(c.handles)
	return errors.Join(errs...)
}

func (c *Chain) Warnings() *types.ErrWarn {
	c.warn = types.ErrWarn{}
	c.warn.Merge(&c.failed)
	for _, h := range c.handles {
		if w, ok := h.(Warner); ok {
			c.warn.Merge(w.Warnings())
		}
	}
	return &c.warn
}
