package config

import (
	"log/slog"
)

type CompressionCodec int

// Values match the codec ids written into segment headers.
const (
	CompressionNone CompressionCodec = iota
	CompressionSnappy
	CompressionZlib
	CompressionLz4
	CompressionZstd
)

// DeviceOptions Configuration options for the device. These options are set when the device is opened.
type DeviceOptions struct {
	// BoltPath selects the bolt file engine when set. Collections are kept
	// in memory otherwise.
	BoltPath string

	// CompressionCodec used for spilled result segments.
	CompressionCodec CompressionCodec

	// SegmentCacheSize is the number of spilled segments kept decoded-ready
	// in memory.
	SegmentCacheSize int

	// ReadAhead is how many rows a streamed result decodes ahead of the cursor.
	ReadAhead int

	Log *slog.Logger
}

func DefaultDeviceOptions() DeviceOptions {
	return DeviceOptions{
		CompressionCodec: CompressionSnappy,
		SegmentCacheSize: 64,
		ReadAhead:        128,
		Log:              slog.Default(),
	}
}

// ResultOptions Configuration for a single result cursor.
type ResultOptions struct {
	Log *slog.Logger
}

func DefaultResultOptions() ResultOptions {
	return ResultOptions{
		Log: slog.Default(),
	}
}
