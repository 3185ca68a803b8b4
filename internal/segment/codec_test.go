package segment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octris/octodb/internal/types"
)

func TestRowCodecRoundTrip(t *testing.T) {
	row := types.NewRow(
		"id", int64(math.MinInt64),
		"ratio", math.Inf(-1),
		"title", "héllo",
		"payload", []byte{0, 1, 2},
		"empty", "",
		"flag", true,
		"missing", nil,
	)

	data, err := EncodeRow(row)
	require.NoError(t, err)

	size, err := v0RowCodec.Size(row)
	require.NoError(t, err)
	assert.Equal(t, size, len(data))

	got, err := DecodeRow(data)
	require.NoError(t, err)
	assert.True(t, row.Equal(got), "want %s, got %s", row, got)
	assert.Equal(t, row.Names(), got.Names())
}

func TestRowCodecEmptyRow(t *testing.T) {
	data, err := EncodeRow(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, data)

	got, err := DecodeRow(data)
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestRowCodecUnsupportedValue(t *testing.T) {
	_, err := EncodeRow(types.Row{{Name: "when", Value: struct{}{}}})
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestRowCodecCorrupt(t *testing.T) {
	data, err := EncodeRow(types.NewRow("id", 1, "name", "bob"))
	require.NoError(t, err)

	for _, tc := range []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated name length", data[:3]},
		{"truncated value", data[:len(data)-1]},
		{"trailing bytes", append(append([]byte{}, data...), 0xff)},
		{"unknown kind", []byte{0, 1, 0, 1, 'x', 0x7f}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeRow(tc.data)
			assert.ErrorIs(t, err, ErrCorruptRow)
		})
	}
}
