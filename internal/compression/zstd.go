package compression

import (
	"bytes"

	"github.com/klauspost/compress/zstd"
)

// Level selects the zstd encoder speed. LevelOff disables compression.
type Level int

const (
	LevelOff Level = iota
	LevelFastest
	LevelDefault
	LevelBetter
)

// zstd frame magic number, little endian.
var frameMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

type Compressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
	enabled bool
}

func NewCompressor(level Level) (*Compressor, error) {
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}

	if level == LevelOff {
		return &Compressor{decoder: decoder}, nil
	}

	var encoderLevel zstd.EncoderLevel
	switch level {
	case LevelFastest:
		encoderLevel = zstd.SpeedFastest
	case LevelBetter:
		encoderLevel = zstd.SpeedBetterCompression
	default:
		encoderLevel = zstd.SpeedDefault
	}

	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(encoderLevel),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		decoder.Close()
		return nil, err
	}

	return &Compressor{
		encoder: encoder,
		decoder: decoder,
		enabled: true,
	}, nil
}

func (c *Compressor) Enabled() bool { return c.enabled }

func (c *Compressor) Compress(data []byte) []byte {
	if !c.enabled {
		return data
	}
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)))
}

// Decompress accepts both zstd frames and uncompressed payloads, so data written
// with compression disabled still loads after it is turned on.
func (c *Compressor) Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}
	return c.decoder.DecodeAll(data, nil)
}

func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, frameMagic)
}

func (c *Compressor) Close() error {
	if c.encoder != nil {
		c.encoder.Close()
	}
	if c.decoder != nil {
		c.decoder.Close()
	}
	return nil
}
