package compress

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/octris/octodb/internal/flatbuf"
)

// Codec identifies how a spilled segment body is compressed. The numeric
// value is persisted in the segment header, so existing values must not change.
type Codec uint8

const (
	CodecNone Codec = iota
	CodecSnappy
	CodecZlib
	CodecLz4
	CodecZstd
)

var ErrInvalidCodec = errors.New("invalid compression codec")

var codecNames = map[Codec]string{
	CodecNone:   "none",
	CodecSnappy: "snappy",
	CodecZlib:   "zlib",
	CodecLz4:    "lz4",
	CodecZstd:   "zstd",
}

func (c Codec) String() string {
	if name, ok := codecNames[c]; ok {
		return name
	}
	return fmt.Sprintf("codec(%d)", uint8(c))
}

func (c Codec) Valid() bool {
	_, ok := codecNames[c]
	return ok
}

func CodecToFlatBuf(c Codec) (flatbuf.CompressionCodec, error) {
	switch c {
	case CodecNone:
		return flatbuf.CompressionCodecNone, nil
	case CodecSnappy:
		return flatbuf.CompressionCodecSnappy, nil
	case CodecZlib:
		return flatbuf.CompressionCodecZlib, nil
	case CodecLz4:
		return flatbuf.CompressionCodecLz4, nil
	case CodecZstd:
		return flatbuf.CompressionCodecZstd, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrInvalidCodec, c)
	}
}

// CodecFromFlatBuf returns an error rather than panicking; the value comes
// from a segment read back from storage.
func CodecFromFlatBuf(f flatbuf.CompressionCodec) (Codec, error) {
	switch f {
	case flatbuf.CompressionCodecNone:
		return CodecNone, nil
	case flatbuf.CompressionCodecSnappy:
		return CodecSnappy, nil
	case flatbuf.CompressionCodecZlib:
		return CodecZlib, nil
	case flatbuf.CompressionCodecLz4:
		return CodecLz4, nil
	case flatbuf.CompressionCodecZstd:
		return CodecZstd, nil
	default:
		return CodecNone, fmt.Errorf("%w: %s", ErrInvalidCodec, f)
	}
}

// ParseCodec maps a case-insensitive codec name, as used by the CLI and
// config, onto a Codec.
func ParseCodec(name string) (Codec, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return CodecNone, nil
	}
	for c, n := range codecNames {
		if n == name {
			return c, nil
		}
	}
	return CodecNone, fmt.Errorf("%w: %q", ErrInvalidCodec, name)
}

// Encode compresses buf with codec.
func Encode(buf []byte, codec Codec) ([]byte, error) {
	switch codec {
	case CodecNone:
		return buf, nil
	case CodecSnappy:
		return snappy.Encode(nil, buf), nil
	case CodecZlib:
		return writeAll(buf, func(w io.Writer) (io.WriteCloser, error) {
			return zlib.NewWriter(w), nil
		})
	case CodecLz4:
		return writeAll(buf, func(w io.Writer) (io.WriteCloser, error) {
			return lz4.NewWriter(w), nil
		})
	case CodecZstd:
		return writeAll(buf, func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w)
		})
	default:
		return nil, ErrInvalidCodec
	}
}

// Decode reverses Encode.
func Decode(buf []byte, codec Codec) ([]byte, error) {
	switch codec {
	case CodecNone:
		return buf, nil
	case CodecSnappy:
		return snappy.Decode(nil, buf)
	case CodecZlib:
		r, err := zlib.NewReader(bytes.NewReader(buf))
		if err != nil {
			return nil, err
		}
		defer func() { _ = r.Close() }()
		return io.ReadAll(r)
	case CodecLz4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(buf)))
	case CodecZstd:
		r, err := zstd.NewReader(bytes.NewReader(buf))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		return io.ReadAll(r)
	default:
		return nil, ErrInvalidCodec
	}
}

func writeAll(buf []byte, open func(io.Writer) (io.WriteCloser, error)) ([]byte, error) {
	var b bytes.Buffer
	w, err := open(&b)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(buf); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
