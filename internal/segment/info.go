package segment

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/octris/octodb/internal/compress"
	"github.com/octris/octodb/internal/flatbuf"
)

const (
	sizeOfUint32 = 4

	// formatV1 starts at one; zero is what an unset flatbuffer field reads as.
	formatV1 = 0x01
)

// Info describes a segment. It is stored as a flatbuf.SegmentInfo trailer
// after the compressed body:
//
//	| body | SegmentInfo | crc32(SegmentInfo) | offset of SegmentInfo |
type Info struct {
	FormatVersion byte
	Codec         compress.Codec
	RowCount      uint32
	BodyLen       uint64
}

func encodeInfo(info *Info) ([]byte, error) {
	codec, err := compress.CodecToFlatBuf(info.Codec)
	if err != nil {
		return nil, err
	}
	fbInfo := flatbuf.SegmentInfoT{
		FormatVersion:     info.FormatVersion,
		CompressionFormat: codec,
		RowCount:          info.RowCount,
		BodyLen:           info.BodyLen,
	}

	builder := flatbuffers.NewBuilder(0)
	flatbuf.FinishSegmentInfoBuffer(builder, fbInfo.Pack(builder))
	b := builder.FinishedBytes()

	return binary.BigEndian.AppendUint32(b, crc32.ChecksumIEEE(b)), nil
}

func decodeInfo(b []byte) (*Info, error) {
	if len(b) <= sizeOfUint32 {
		return nil, fmt.Errorf("%w: segment info of %d bytes", ErrCorruptRow, len(b))
	}

	// last 4 bytes hold the checksum
	checksumIndex := len(b) - sizeOfUint32
	if binary.BigEndian.Uint32(b[checksumIndex:]) != crc32.ChecksumIEEE(b[:checksumIndex]) {
		return nil, fmt.Errorf("%w: segment info checksum mismatch", ErrCorruptRow)
	}

	fbInfo := flatbuf.GetRootAsSegmentInfo(b[:checksumIndex], 0).UnPack()
	codec, err := compress.CodecFromFlatBuf(fbInfo.CompressionFormat)
	if err != nil {
		return nil, err
	}
	return &Info{
		FormatVersion: fbInfo.FormatVersion,
		Codec:         codec,
		RowCount:      fbInfo.RowCount,
		BodyLen:       fbInfo.BodyLen,
	}, nil
}

// encodeSegment appends the info trailer to an already compressed body.
func encodeSegment(body []byte, info *Info) ([]byte, error) {
	trailer, err := encodeInfo(info)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, len(body)+len(trailer)+sizeOfUint32)
	buf = append(buf, body...)
	buf = append(buf, trailer...)
	return binary.BigEndian.AppendUint32(buf, uint32(len(body))), nil
}

// decodeSegment splits a segment into its compressed body and info.
func decodeSegment(data []byte) ([]byte, *Info, error) {
	if len(data) < 2*sizeOfUint32 {
		return nil, nil, fmt.Errorf("%w: segment of %d bytes", ErrCorruptRow, len(data))
	}
	end := len(data) - sizeOfUint32
	offset := uint64(binary.BigEndian.Uint32(data[end:]))
	if offset >= uint64(end) {
		return nil, nil, fmt.Errorf("%w: segment info offset %d out of range", ErrCorruptRow, offset)
	}

	info, err := decodeInfo(data[offset:end])
	if err != nil {
		return nil, nil, err
	}
	if info.FormatVersion != formatV1 {
		return nil, nil, fmt.Errorf("%w: unknown segment format %d", ErrCorruptRow, info.FormatVersion)
	}
	if info.BodyLen != offset {
		return nil, nil, fmt.Errorf("%w: segment body is %d bytes, info says %d", ErrCorruptRow, offset, info.BodyLen)
	}
	return data[:offset], info, nil
}
