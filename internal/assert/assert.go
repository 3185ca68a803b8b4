package assert

import (
	"fmt"
	"testing"

	"github.com/samber/mo"
	assert2 "github.com/stretchr/testify/assert"

	"github.com/octris/octodb/internal/types"
)

func True(condition bool, errMsg string, arg ...any) {
	if !condition {
		panic(fmt.Sprintf("Assertion Failed: %s\n", fmt.Sprintf(errMsg, arg...)))
	}
}

// RowCursor is the part of a raw row cursor the test helpers drive.
type RowCursor interface {
	Valid() bool
	Current() (mo.Option[types.Row], error)
	Next()
}

// Rows is a test helper that walks the cursor with the valid, current, next
// loop and verifies it yields exactly the expected rows, then exhausts.
func Rows(t *testing.T, c RowCursor, expected ...types.Row) bool {
	t.Helper()
	for i, want := range expected {
		if !assert2.True(t, c.Valid(), "row %d: cursor exhausted early", i) {
			return false
		}
		got, err := c.Current()
		if !assert2.NoError(t, err) {
			return false
		}
		row, ok := got.Get()
		if !assert2.True(t, ok, "row %d: current is absent", i) {
			return false
		}
		if !assert2.True(t, want.Equal(row), "row %d: want %s, got %s", i, want, row) {
			return false
		}
		c.Next()
	}
	return Exhausted(t, c)
}

// Exhausted is a test helper asserting Valid reports false and Current is absent.
func Exhausted(t *testing.T, c RowCursor) bool {
	t.Helper()
	if !assert2.False(t, c.Valid(), "cursor has more rows") {
		return false
	}
	got, err := c.Current()
	return assert2.NoError(t, err) && assert2.True(t, got.IsAbsent(), "current is present after exhaustion")
}
