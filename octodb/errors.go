package octodb

import (
	"errors"

	"github.com/octris/octodb/internal/compress"
	"github.com/octris/octodb/internal/segment"
	"github.com/octris/octodb/internal/types"
)

var (
	// ErrUnsupportedOperation is matched by every *UnsupportedOperationError.
	ErrUnsupportedOperation = types.ErrUnsupportedOperation
	ErrCollectionNotFound   = types.ErrCollectionNotFound
	ErrSegmentNotFound      = segment.ErrSegmentNotFound
	ErrCorruptRow           = segment.ErrCorruptRow
	ErrUnsupportedValue     = segment.ErrUnsupportedValue
	ErrInvalidCodec         = compress.ErrInvalidCodec

	ErrResultClosed    = errors.New("result closed")
	ErrDeviceClosed    = errors.New("device closed")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBreak may be returned from a ForEach callback to stop iterating
	// without reporting an error.
	ErrBreak = errors.New("break")
)

// UnsupportedOperationError is returned by Result.Rewind when the engine
// handle cannot reposition to its first row.
type UnsupportedOperationError = types.UnsupportedOperationError

// ErrWarn lists fetch failures a handle turned into "no more rows".
type ErrWarn = types.ErrWarn
