package segment

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"log/slog"
	"testing"

	"github.com/Pallinder/go-randomdata"
	"github.com/agiledragon/gomonkey/v2"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thanos-io/objstore"

	"github.com/octris/octodb/internal/compress"
	"github.com/octris/octodb/internal/types"
)

func randomRows(n int) []types.Row {
	rows := make([]types.Row, n)
	for i := range rows {
		rows[i] = types.NewRow(
			"id", i+1,
			"name", randomdata.FullName(randomdata.RandomGender),
			"city", randomdata.City(),
			"score", randomdata.Decimal(0, 100),
			"active", randomdata.Boolean(),
			"avatar", []byte(randomdata.StringNumber(4, "")),
			"deleted_at", nil,
		)
	}
	return rows
}

func readAll(t *testing.T, r *Reader) []types.Row {
	t.Helper()
	var rows []types.Row
	for {
		row, err := r.Next()
		if err == io.EOF {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	rows := randomRows(50)

	for _, codec := range []compress.Codec{compress.CodecNone, compress.CodecSnappy,
		compress.CodecZlib, compress.CodecLz4, compress.CodecZstd} {
		t.Run(codec.String(), func(t *testing.T) {
			bucket := objstore.NewInMemBucket()
			store := NewStore(bucket, Config{RootPath: "/tmp/octodb", Codec: codec, Log: slog.Default()})
			defer store.Close()

			id, err := store.Write(ctx, rows)
			require.NoError(t, err)

			// Drop the cached copy so Open goes to the bucket.
			store.cache.Delete(id)

			r, err := store.Open(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, len(rows), r.Remaining())

			got := readAll(t, r)
			require.Len(t, got, len(rows))
			for i := range rows {
				assert.True(t, rows[i].Equal(got[i]), "row %d: want %s, got %s", i, rows[i], got[i])
			}

			_, err = r.Next()
			assert.Equal(t, io.EOF, err)
		})
	}
}

func TestStoreEmptySegment(t *testing.T) {
	ctx := context.Background()
	store := NewStore(objstore.NewInMemBucket(), Config{Codec: compress.CodecSnappy})
	defer store.Close()

	id, err := store.Write(ctx, nil)
	require.NoError(t, err)

	r, err := store.Open(ctx, id)
	require.NoError(t, err)
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestStorePinnedIDs(t *testing.T) {
	ctx := context.Background()
	var timeMs uint64
	patches := gomonkey.ApplyFunc(newID, func() ulid.ULID {
		timeMs++
		return ulid.MustNew(timeMs, nil)
	})
	defer patches.Reset()

	bucket := objstore.NewInMemBucket()
	store := NewStore(bucket, Config{RootPath: "db"})
	defer store.Close()

	first, err := store.Write(ctx, randomRows(1))
	require.NoError(t, err)
	second, err := store.Write(ctx, randomRows(2))
	require.NoError(t, err)

	assert.Equal(t, ulid.MustNew(1, nil), first)
	assert.Equal(t, ulid.MustNew(2, nil), second)

	exists, err := bucket.Exists(ctx, "db/segments/"+first.String()+".seg")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestStoreMissingSegment(t *testing.T) {
	ctx := context.Background()
	store := NewStore(objstore.NewInMemBucket(), Config{})
	defer store.Close()

	_, err := store.Open(ctx, ulid.Make())
	assert.ErrorIs(t, err, ErrSegmentNotFound)

	assert.ErrorIs(t, store.Delete(ctx, ulid.Make()), ErrSegmentNotFound)
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore(objstore.NewInMemBucket(), Config{})
	defer store.Close()

	id, err := store.Write(ctx, randomRows(3))
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, id))

	_, err = store.Open(ctx, id)
	assert.ErrorIs(t, err, ErrSegmentNotFound)
}

func TestReaderCorruptSegment(t *testing.T) {
	ctx := context.Background()
	store := NewStore(objstore.NewInMemBucket(), Config{})
	defer store.Close()

	var body []byte
	for _, row := range randomRows(2) {
		var err error
		body, err = v0RowCodec.Encode(body, row)
		require.NoError(t, err)
	}
	// Chop the tail of the second row off, leaving the info intact.
	body = body[:len(body)-3]
	data, err := encodeSegment(body, &Info{FormatVersion: formatV1, RowCount: 2, BodyLen: uint64(len(body))})
	require.NoError(t, err)

	id := ulid.Make()
	store.cache.Set(id, data)

	r, err := store.Open(ctx, id)
	require.NoError(t, err)

	_, err = r.Next()
	require.NoError(t, err)
	_, err = r.Next()
	assert.ErrorIs(t, err, ErrCorruptRow)

	// A corrupt reader stays finished.
	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestOpenCorruptInfo(t *testing.T) {
	ctx := context.Background()
	store := NewStore(objstore.NewInMemBucket(), Config{Codec: compress.CodecLz4})
	defer store.Close()

	id, err := store.Write(ctx, randomRows(3))
	require.NoError(t, err)
	good, ok := store.cache.Get(id)
	require.True(t, ok)

	unknownFormat, err := encodeSegment(nil, &Info{FormatVersion: 7})
	require.NoError(t, err)
	lyingBodyLen, err := encodeSegment([]byte("abc"), &Info{FormatVersion: formatV1, BodyLen: 9})
	require.NoError(t, err)

	flipped := bytes.Clone(good)
	// The byte before the offset is part of the info checksum.
	flipped[len(flipped)-5] ^= 0xff

	badOffset := bytes.Clone(good)
	binary.BigEndian.PutUint32(badOffset[len(badOffset)-4:], uint32(len(badOffset)))

	for name, data := range map[string][]byte{
		"too short":      {0x01, 0x00, 0x00},
		"unknown format": unknownFormat,
		"body length":    lyingBodyLen,
		"checksum":       flipped,
		"offset":         badOffset,
	} {
		t.Run(name, func(t *testing.T) {
			corruptID := ulid.Make()
			store.cache.Set(corruptID, data)
			_, err := store.Open(ctx, corruptID)
			assert.ErrorIs(t, err, ErrCorruptRow)
		})
	}
}

func TestSegmentInfoRoundTrip(t *testing.T) {
	want := &Info{FormatVersion: formatV1, Codec: compress.CodecZstd, RowCount: 42, BodyLen: 1 << 33}
	data, err := encodeSegment(make([]byte, 16), &Info{FormatVersion: formatV1, Codec: compress.CodecZstd, RowCount: 42, BodyLen: 16})
	require.NoError(t, err)

	body, info, err := decodeSegment(data)
	require.NoError(t, err)
	assert.Len(t, body, 16)
	assert.Equal(t, compress.CodecZstd, info.Codec)
	assert.Equal(t, uint32(42), info.RowCount)

	b, err := encodeInfo(want)
	require.NoError(t, err)
	got, err := decodeInfo(b)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = encodeInfo(&Info{Codec: compress.Codec(42)})
	assert.ErrorIs(t, err, compress.ErrInvalidCodec)
}
