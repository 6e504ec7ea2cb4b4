// Package codec serializes the store's collections to their backing files.
//
// Two adapters share the Codec interface:
//   - JSON: human-readable text for string maps and record lists
//   - Gob: binary encoding for values that are not plain text, optionally
//     zstd compressed
package codec

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/aweris/mediacache/internal/compression"
)

// ErrEmpty is returned by Load when the backing file has no content.
var ErrEmpty = errors.New("codec: empty file")

// Codec converts a value to and from its on-disk byte representation.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSON is the text codec.
type JSON struct{}

// Marshal encodes v as JSON.
func (JSON) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// Unmarshal decodes JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Gob is the binary codec. The gob stream is compressed when the compressor
// is enabled.
type Gob struct {
	compressor *compression.Compressor
}

// NewGob returns a binary codec that compresses with c.
func NewGob(c *compression.Compressor) *Gob {
	return &Gob{compressor: c}
}

// Marshal gob-encodes v and compresses the stream.
func (g *Gob) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return g.compressor.Compress(buf.Bytes()), nil
}

// Unmarshal decompresses data when needed and gob-decodes it into v.
func (g *Gob) Unmarshal(data []byte, v any) error {
	raw, err := g.compressor.Decompress(data)
	if err != nil {
		return fmt.Errorf("decompress: %w", err)
	}
	return gob.NewDecoder(bytes.NewReader(raw)).Decode(v)
}

// Load reads path and decodes it into v.
func Load(path string, c Codec, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmpty
	}
	return c.Unmarshal(data, v)
}

// Save encodes v and overwrites path with the result.
func Save(path string, c Codec, v any) error {
	data, err := c.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Touch creates path as an empty file if it does not exist yet.
func Touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}
