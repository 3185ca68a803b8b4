package assert_test

import (
	"testing"

	"github.com/octris/octodb/internal/assert"
	assert2 "github.com/stretchr/testify/assert"
)

func TestTrue(t *testing.T) {
	assert2.NotPanics(t, func() { assert.True(true, "never") })
	assert2.PanicsWithValue(t, "Assertion Failed: position 3 out of range\n", func() {
		assert.True(false, "position %d out of range", 3)
	})
}
