// Package handle implements the engine result handles a cursor consumes.
// Every handle reports exhaustion and fetch failures the same way, as "no
// more rows"; failures are kept as warnings.
package handle

import (
	"errors"

	"github.com/octris/octodb/internal/types"
)

var ErrClosed = errors.New("handle closed")

// Handle is the contract shared by every handle in this package.
type Handle interface {
	FetchNext() (types.Row, bool)
	Reset() error
	Close() error
}

// Warner is implemented by handles that can lose rows to fetch failures.
type Warner interface {
	Warnings() *types.ErrWarn
}

// ForwardOnly is implemented by handles whose Reset always fails.
type ForwardOnly interface {
	ForwardOnly() bool
}
