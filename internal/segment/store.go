package segment

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"

	"github.com/kapetan-io/tackle/set"
	"github.com/maypok86/otter"
	"github.com/oklog/ulid/v2"
	"github.com/thanos-io/objstore"

	"github.com/octris/octodb/internal/assert"
	"github.com/octris/octodb/internal/compress"
	"github.com/octris/octodb/internal/types"
)

const segmentExt = ".seg"

var ErrSegmentNotFound = errors.New("segment not found")

// ------------------------------------------------
// Store persists spilled results as immutable
// segments in object storage
// ------------------------------------------------

type Config struct {
	RootPath  string
	Codec     compress.Codec
	CacheSize int
	Log       *slog.Logger
}

type Store struct {
	bucket objstore.Bucket
	conf   Config
	cache  otter.Cache[ulid.ULID, []byte]
}

func NewStore(bucket objstore.Bucket, conf Config) *Store {
	set.Default(&conf.Log, slog.Default())
	set.Default(&conf.CacheSize, 64)
	assert.True(conf.Codec.Valid(), "invalid segment codec '%s'", conf.Codec)

	cache, err := otter.MustBuilder[ulid.ULID, []byte](conf.CacheSize).Build()
	assert.True(err == nil, "unable to build segment cache: %v", err)

	return &Store{
		bucket: bucket,
		conf:   conf,
		cache:  cache,
	}
}

// newID is a seam so tests can pin segment ids.
//
//go:noinline
func newID() ulid.ULID {
	return ulid.Make()
}

func (s *Store) path(id ulid.ULID) string {
	return path.Join(s.conf.RootPath, "segments", id.String()+segmentExt)
}

// Write encodes rows into a new segment and uploads it.
func (s *Store) Write(ctx context.Context, rows []types.Row) (ulid.ULID, error) {
	data, err := s.encode(rows)
	if err != nil {
		return ulid.ULID{}, err
	}

	id := newID()
	if err := s.bucket.Upload(ctx, s.path(id), bytes.NewReader(data)); err != nil {
		return ulid.ULID{}, fmt.Errorf("while uploading segment %s: %w", id, err)
	}
	s.cache.Set(id, data)
	s.conf.Log.Debug("segment written", "id", id.String(), "rows", len(rows),
		"bytes", len(data), "codec", s.conf.Codec.String())
	return id, nil
}

func (s *Store) encode(rows []types.Row) ([]byte, error) {
	var body []byte
	var err error
	for i, row := range rows {
		body, err = v0RowCodec.Encode(body, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}

	compressed, err := compress.Encode(body, s.conf.Codec)
	if err != nil {
		return nil, err
	}
	return encodeSegment(compressed, &Info{
		FormatVersion: formatV1,
		Codec:         s.conf.Codec,
		RowCount:      uint32(len(rows)),
		BodyLen:       uint64(len(compressed)),
	})
}

// Open fetches the segment and returns a forward-only reader over its rows.
func (s *Store) Open(ctx context.Context, id ulid.ULID) (*Reader, error) {
	data, err := s.read(ctx, id)
	if err != nil {
		return nil, err
	}
	compressed, info, err := decodeSegment(data)
	if err != nil {
		return nil, fmt.Errorf("segment %s: %w", id, err)
	}

	body, err := compress.Decode(compressed, info.Codec)
	if err != nil {
		return nil, fmt.Errorf("while decompressing segment %s: %w", id, err)
	}
	return &Reader{
		remaining: info.RowCount,
		data:      body,
	}, nil
}

func (s *Store) read(ctx context.Context, id ulid.ULID) ([]byte, error) {
	if data, ok := s.cache.Get(id); ok {
		return data, nil
	}

	rc, err := s.bucket.Get(ctx, s.path(id))
	if err != nil {
		if s.bucket.IsObjNotFoundErr(err) {
			return nil, fmt.Errorf("%w: %s", ErrSegmentNotFound, id)
		}
		return nil, fmt.Errorf("while reading segment %s: %w", id, err)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("while reading segment %s: %w", id, err)
	}
	s.cache.Set(id, data)
	return data, nil
}

// Delete removes the segment from storage and the cache.
func (s *Store) Delete(ctx context.Context, id ulid.ULID) error {
	s.cache.Delete(id)
	if err := s.bucket.Delete(ctx, s.path(id)); err != nil {
		if s.bucket.IsObjNotFoundErr(err) {
			return fmt.Errorf("%w: %s", ErrSegmentNotFound, id)
		}
		return err
	}
	return nil
}

func (s *Store) Close() {
	s.cache.Close()
}

// Reader decodes the rows of a segment one at a time. There is no way back
// to the first row; open the segment again instead.
type Reader struct {
	remaining uint32
	data      []byte
}

// Next returns the next row, or io.EOF once every row was read.
func (r *Reader) Next() (types.Row, error) {
	if r.remaining == 0 {
		if len(r.data) != 0 {
			return nil, fmt.Errorf("%w: %d trailing bytes after last row", ErrCorruptRow, len(r.data))
		}
		return nil, io.EOF
	}

	row, n, err := v0RowCodec.Decode(r.data)
	if err != nil {
		r.remaining = 0
		r.data = nil
		return nil, err
	}
	r.data = r.data[n:]
	r.remaining--
	return row, nil
}

func (r *Reader) Remaining() int {
	return int(r.remaining)
}
