package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrWarn collects problems a handle ran into while fetching rows. A handle
// never fails a fetch; it reports "no more rows" and leaves a warning here so
// callers can tell a clean end of stream from a truncated one.
type ErrWarn struct {
	Warnings []string
}

func (e *ErrWarn) Error() string {
	return strings.Join(e.Warnings, "\n")
}

func (e *ErrWarn) Is(target error) bool {
	_, ok := target.(*ErrWarn)
	return ok
}

func (e *ErrWarn) Add(s string, arg ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(s, arg...))
}

// Merge appends the warnings of other, if any.
func (e *ErrWarn) Merge(other *ErrWarn) {
	if other == nil {
		return
	}
	e.Warnings = append(e.Warnings, other.Warnings...)
}

func (e *ErrWarn) Len() int {
	return len(e.Warnings)
}

// If returns the receiver as an error when at least one warning was added.
func (e *ErrWarn) If() error {
	if len(e.Warnings) > 0 {
		return e
	}
	return nil
}

var (
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrCollectionNotFound   = errors.New("collection not found")
)

// UnsupportedOperationError reports an operation the underlying engine
// handle cannot perform, such as repositioning a forward-only stream.
type UnsupportedOperationError struct {
	Op     string
	Reason string
}

func (e *UnsupportedOperationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", e.Op, ErrUnsupportedOperation)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, ErrUnsupportedOperation, e.Reason)
}

func (e *UnsupportedOperationError) Is(target error) bool {
	if target == ErrUnsupportedOperation {
		return true
	}
	_, ok := target.(*UnsupportedOperationError)
	return ok
}
