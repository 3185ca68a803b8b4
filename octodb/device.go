package octodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/boltdb/bolt"
	"github.com/kapetan-io/tackle/set"
	"github.com/oklog/ulid/v2"
	"github.com/thanos-io/objstore"

	"github.com/octris/octodb/internal/compress"
	"github.com/octris/octodb/internal/handle"
	"github.com/octris/octodb/internal/segment"
	"github.com/octris/octodb/internal/table"
	"github.com/octris/octodb/octodb/config"
)

// Device is the storage engine results are read from. Collections live in
// memory, or in a bolt file when DeviceOptions.BoltPath is set. Results can
// be spilled into the object store and streamed back later.
//
// A Device is safe for concurrent use; the Results it hands out are not.
type Device struct {
	mu       sync.RWMutex
	opts     config.DeviceOptions
	tables   map[string]*table.Table
	db       *bolt.DB
	segments *segment.Store
	log      *slog.Logger
	closed   bool
}

func Open(ctx context.Context, path string, bucket objstore.Bucket) (*Device, error) {
	return OpenWithOptions(ctx, path, bucket, config.DefaultDeviceOptions())
}

// OpenWithOptions opens a device whose spilled segments are stored under
// path in bucket.
func OpenWithOptions(_ context.Context, path string, bucket objstore.Bucket, opts config.DeviceOptions) (*Device, error) {
	defaults := config.DefaultDeviceOptions()
	set.Default(&opts.Log, defaults.Log)
	set.Default(&opts.SegmentCacheSize, defaults.SegmentCacheSize)
	set.Default(&opts.ReadAhead, defaults.ReadAhead)

	if opts.CompressionCodec < 0 || opts.CompressionCodec > math.MaxUint8 {
		return nil, fmt.Errorf("%w: %w %d", ErrInvalidArgument, ErrInvalidCodec, opts.CompressionCodec)
	}
	codec := compress.Codec(opts.CompressionCodec)
	if !codec.Valid() {
		return nil, fmt.Errorf("%w: %w %d", ErrInvalidArgument, ErrInvalidCodec, opts.CompressionCodec)
	}

	d := &Device{
		opts:   opts,
		tables: make(map[string]*table.Table),
		log:    opts.Log,
		segments: segment.NewStore(bucket, segment.Config{
			RootPath:  path,
			Codec:     codec,
			CacheSize: opts.SegmentCacheSize,
			Log:       opts.Log,
		}),
	}

	engine := "memory"
	if opts.BoltPath != "" {
		db, err := bolt.Open(opts.BoltPath, 0600, &bolt.Options{Timeout: time.Second})
		if err != nil {
			d.segments.Close()
			return nil, fmt.Errorf("while opening bolt file %q: %w", opts.BoltPath, err)
		}
		d.db = db
		engine = "bolt"
	}

	d.log.Info("device opened", "engine", engine, "path", path, "codec", codec.String())
	return d, nil
}

// Close releases the bolt file and the segment cache. Results still open
// on a bolt device hold read transactions and must be closed first.
func (d *Device) Close(_ context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true
	d.segments.Close()
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Insert stores row under key in collection, creating the collection on
// first use.
func (d *Device) Insert(_ context.Context, collection, key string, row Row) error {
	if collection == "" || key == "" {
		return fmt.Errorf("%w: collection and key must not be empty", ErrInvalidArgument)
	}
	encoded, err := segment.EncodeRow(row)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDeviceClosed
	}

	if d.db != nil {
		return d.db.Update(func(tx *bolt.Tx) error {
			b, err := tx.CreateBucketIfNotExists([]byte(collection))
			if err != nil {
				return err
			}
			return b.Put([]byte(key), encoded)
		})
	}

	t, ok := d.tables[collection]
	if !ok {
		t = table.New()
		d.tables[collection] = t
	}
	t.Put(key, row)
	return nil
}

// Collections returns the collection names in sorted order.
func (d *Device) Collections() ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return nil, ErrDeviceClosed
	}

	var names []string
	if d.db != nil {
		err := d.db.View(func(tx *bolt.Tx) error {
			return tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
				names = append(names, string(name))
				return nil
			})
		})
		if err != nil {
			return nil, err
		}
	} else {
		for name := range d.tables {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// open executes the engine side of a query on one collection.
func (d *Device) open(collection string) (handle.Handle, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return nil, ErrDeviceClosed
	}

	if d.db != nil {
		h, err := handle.NewBolt(d.db, collection)
		if err != nil {
			return nil, err
		}
		return h, nil
	}
	t, ok := d.tables[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, collection)
	}
	return handle.NewSnapshot(t.Snapshot()...), nil
}

func (d *Device) resultOptions() config.ResultOptions {
	return config.ResultOptions{Log: d.log}
}

// Select returns a cursor over collection whose rows come back as *DataObject.
func (d *Device) Select(ctx context.Context, collection string) (*Result[*DataObject], error) {
	return SelectWith(ctx, d, collection, DataObjects())
}

// SelectWith returns a cursor over collection whose rows are built by m.
func SelectWith[T any](_ context.Context, d *Device, collection string, m Materializer[T]) (*Result[T], error) {
	h, err := d.open(collection)
	if err != nil {
		return nil, err
	}
	d.log.Debug("select", "collection", collection)
	return NewBoundResult(h, d, collection, m, d.resultOptions()), nil
}

// Scan returns a cursor over the rows of every named collection, in argument
// order. With no names, all collections are scanned in sorted order. The
// rows do not belong to a single collection, so they come back raw.
func (d *Device) Scan(_ context.Context, collections ...string) (*Result[Row], error) {
	if len(collections) == 0 {
		var err error
		if collections, err = d.Collections(); err != nil {
			return nil, err
		}
	}

	handles := make([]handle.Handle, 0, len(collections))
	for _, name := range collections {
		h, err := d.open(name)
		if err != nil {
			for _, opened := range handles {
				_ = opened.Close()
			}
			return nil, err
		}
		handles = append(handles, h)
	}
	d.log.Debug("scan", "collections", collections)
	return NewResult(handle.NewChain(handles...), d.resultOptions()), nil
}

// Spill writes the current rows of collection into a new segment in the
// object store and returns its id.
func (d *Device) Spill(ctx context.Context, collection string) (ulid.ULID, error) {
	h, err := d.open(collection)
	if err != nil {
		return ulid.ULID{}, err
	}

	var rows []Row
	for row, ok := h.FetchNext(); ok; row, ok = h.FetchNext() {
		rows = append(rows, row)
	}
	warn := &ErrWarn{}
	if w, ok := h.(handle.Warner); ok {
		warn = w.Warnings()
	}
	if err := errors.Join(h.Close(), warn.If()); err != nil {
		return ulid.ULID{}, fmt.Errorf("while reading collection %s: %w", collection, err)
	}

	id, err := d.segments.Write(ctx, rows)
	if err != nil {
		return ulid.ULID{}, err
	}
	d.log.Info("collection spilled", "collection", collection, "segment", id.String(), "rows", len(rows))
	return id, nil
}

// Stream returns a forward-only cursor over a spilled segment. The cursor
// cannot be rewound; Stream the segment again to read it twice.
func (d *Device) Stream(ctx context.Context, id ulid.ULID) (*Result[Row], error) {
	d.mu.RLock()
	closed := d.closed
	d.mu.RUnlock()
	if closed {
		return nil, ErrDeviceClosed
	}

	r, err := d.segments.Open(ctx, id)
	if err != nil {
		return nil, err
	}
	d.log.Debug("stream", "segment", id.String(), "rows", r.Remaining())
	return NewResult(handle.NewStream(r, d.opts.ReadAhead), d.resultOptions()), nil
}

// DropSegment deletes a spilled segment.
func (d *Device) DropSegment(ctx context.Context, id ulid.ULID) error {
	return d.segments.Delete(ctx, id)
}
