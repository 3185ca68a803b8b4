package compress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/octris/octodb/internal/flatbuf"
)

func TestEncodeDecode(t *testing.T) {
	segment := bytes.Repeat([]byte("id=1;name=alice;"), 256)

	for _, codec := range []Codec{CodecNone, CodecSnappy, CodecZlib, CodecLz4, CodecZstd} {
		t.Run(codec.String(), func(t *testing.T) {
			compressed, err := Encode(segment, codec)
			require.NoError(t, err)
			if codec != CodecNone {
				assert.Less(t, len(compressed), len(segment))
			}

			out, err := Decode(compressed, codec)
			require.NoError(t, err)
			assert.Equal(t, segment, out)
		})
	}
}

func TestInvalidCodec(t *testing.T) {
	_, err := Encode([]byte("x"), Codec(42))
	assert.ErrorIs(t, err, ErrInvalidCodec)

	_, err = Decode([]byte("x"), Codec(42))
	assert.ErrorIs(t, err, ErrInvalidCodec)

	assert.False(t, Codec(42).Valid())
	assert.Equal(t, "codec(42)", Codec(42).String())
}

func TestParseCodec(t *testing.T) {
	c, err := ParseCodec(" ZSTD ")
	require.NoError(t, err)
	assert.Equal(t, CodecZstd, c)

	c, err = ParseCodec("")
	require.NoError(t, err)
	assert.Equal(t, CodecNone, c)

	_, err = ParseCodec("brotli")
	assert.ErrorIs(t, err, ErrInvalidCodec)
}

func TestCodecFlatBuf(t *testing.T) {
	for _, codec := range []Codec{CodecNone, CodecSnappy, CodecZlib, CodecLz4, CodecZstd} {
		fb, err := CodecToFlatBuf(codec)
		require.NoError(t, err)
		assert.Equal(t, codec.String(), strings.ToLower(fb.String()))

		back, err := CodecFromFlatBuf(fb)
		require.NoError(t, err)
		assert.Equal(t, codec, back)
	}

	_, err := CodecToFlatBuf(Codec(42))
	assert.ErrorIs(t, err, ErrInvalidCodec)
	_, err = CodecFromFlatBuf(flatbuf.CompressionCodec(42))
	assert.ErrorIs(t, err, ErrInvalidCodec)
}
