package mediacache

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"slices"

	"github.com/corona10/goimagehash"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultHashSize yields a 64 bit perceptual hash.
const DefaultHashSize = 8

// PerceptualHash is the bit pattern of a DCT based perceptual image hash.
// Words holds the bits most significant word first; Bits is the hash length.
type PerceptualHash struct {
	Words []uint64
	Bits  int
}

func newPerceptualHash(h *goimagehash.ExtImageHash) PerceptualHash {
	return PerceptualHash{Words: slices.Clone(h.GetHash()), Bits: h.Bits()}
}

// ImageHash converts h to its goimagehash form.
func (h PerceptualHash) ImageHash() *goimagehash.ExtImageHash {
	return goimagehash.NewExtImageHash(slices.Clone(h.Words), goimagehash.PHash, h.Bits)
}

// Distance returns the Hamming distance between two hashes of equal length.
func (h PerceptualHash) Distance(other PerceptualHash) (int, error) {
	return h.ImageHash().Distance(other.ImageHash())
}

// Equal reports whether both hashes have the same length and bits.
func (h PerceptualHash) Equal(other PerceptualHash) bool {
	return h.Bits == other.Bits && slices.Equal(h.Words, other.Words)
}

func (h PerceptualHash) String() string {
	return h.ImageHash().ToString()
}

// ComputePerceptualHash decodes the image at path and returns its perceptual
// hash of hashSize*hashSize bits.
func ComputePerceptualHash(path string, hashSize int) (PerceptualHash, error) {
	if n := hashSize * hashSize; hashSize <= 0 || n < 64 || n&(n-1) != 0 {
		return PerceptualHash{}, fmt.Errorf("%w: %d", ErrInvalidHashSize, hashSize)
	}

	f, err := os.Open(path)
	if err != nil {
		return PerceptualHash{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return PerceptualHash{}, fmt.Errorf("decode image %s: %w", path, err)
	}

	h, err := goimagehash.ExtPerceptionHash(img, hashSize, hashSize)
	if err != nil {
		return PerceptualHash{}, fmt.Errorf("phash %s: %w", path, err)
	}
	return newPerceptualHash(h), nil
}

// HasPerceptualHash reports whether key has a cached perceptual hash.
func (s *Store) HasPerceptualHash(key string) bool {
	_, ok := s.phashes[key]
	return ok
}

// GetPerceptualHash returns a copy of the hash stored for key.
func (s *Store) GetPerceptualHash(key string) (PerceptualHash, bool) {
	v, ok := s.phashes[key]
	if !ok {
		return PerceptualHash{}, false
	}
	return PerceptualHash{Words: slices.Clone(v.Words), Bits: v.Bits}, true
}

// PutPerceptualHash stores value under key, replacing any previous value.
// With flush set the checksum and perceptual hash files are rewritten.
func (s *Store) PutPerceptualHash(key string, value PerceptualHash, flush bool) error {
	s.phashes[key] = PerceptualHash{Words: slices.Clone(value.Words), Bits: value.Bits}
	if flush {
		return s.Persist()
	}
	return nil
}
