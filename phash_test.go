package mediacache

import (
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeGradient writes a diagonal grayscale gradient, inverted when invert is set.
func writeGradient(t *testing.T, dir, name string, invert bool) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			v := uint8((x*3 + y) % 256)
			if invert {
				v = 255 - v
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestComputePerceptualHash(t *testing.T) {
	dir := t.TempDir()
	path := writeGradient(t, dir, "gradient.png", false)

	for _, size := range []int{8, 16} {
		h, err := ComputePerceptualHash(path, size)
		require.NoError(t, err)
		assert.Equal(t, size*size, h.Bits)
		assert.Len(t, h.Words, size*size/64)

		again, err := ComputePerceptualHash(path, size)
		require.NoError(t, err)
		assert.True(t, h.Equal(again), "hash must be deterministic")

		d, err := h.Distance(again)
		require.NoError(t, err)
		assert.Zero(t, d)
	}
}

func TestPerceptualHashSeparatesDifferentImages(t *testing.T) {
	dir := t.TempDir()
	a, err := ComputePerceptualHash(writeGradient(t, dir, "a.png", false), DefaultHashSize)
	require.NoError(t, err)
	b, err := ComputePerceptualHash(writeGradient(t, dir, "b.png", true), DefaultHashSize)
	require.NoError(t, err)

	d, err := a.Distance(b)
	require.NoError(t, err)
	assert.Positive(t, d)
	assert.NotEqual(t, a.String(), b.String())
}

func TestComputePerceptualHashInvalidSize(t *testing.T) {
	path := writeGradient(t, t.TempDir(), "g.png", false)

	for _, size := range []int{0, -8, 2, 4, 6, 12} {
		_, err := ComputePerceptualHash(path, size)
		assert.ErrorIs(t, err, ErrInvalidHashSize, "size %d", size)
	}
}

func TestComputePerceptualHashNotAnImage(t *testing.T) {
	path := writeFile(t, t.TempDir(), "notes.txt", []byte("plain text, not pixels"))

	_, err := ComputePerceptualHash(path, DefaultHashSize)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestComputePerceptualHashMissing(t *testing.T) {
	_, err := ComputePerceptualHash(filepath.Join(t.TempDir(), "missing.png"), DefaultHashSize)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestPerceptualHashStore(t *testing.T) {
	dir := t.TempDir()
	h, err := ComputePerceptualHash(writeGradient(t, dir, "g.png", false), 16)
	require.NoError(t, err)

	s := openTestStore(t, filepath.Join(dir, "app"))
	assert.False(t, s.HasPerceptualHash("k"))
	_, ok := s.GetPerceptualHash("k")
	assert.False(t, ok)

	require.NoError(t, s.PutPerceptualHash("k", h, true))
	assert.True(t, s.HasPerceptualHash("k"))

	// Callers get copies.
	got, ok := s.GetPerceptualHash("k")
	require.True(t, ok)
	got.Words[0] ^= 1
	again, _ := s.GetPerceptualHash("k")
	assert.True(t, h.Equal(again))

	reopened := openTestStore(t, filepath.Join(dir, "app"))
	loaded, ok := reopened.GetPerceptualHash("k")
	require.True(t, ok)
	assert.True(t, h.Equal(loaded))
	assert.Equal(t, 256, loaded.Bits)
}

func TestPutPerceptualHashLastWriteWins(t *testing.T) {
	s := openTestStore(t, t.TempDir())
	first := PerceptualHash{Words: []uint64{1}, Bits: 64}
	second := PerceptualHash{Words: []uint64{2}, Bits: 64}

	require.NoError(t, s.PutPerceptualHash("k", first, false))
	require.NoError(t, s.PutPerceptualHash("k", second, false))

	got, ok := s.GetPerceptualHash("k")
	require.True(t, ok)
	assert.True(t, second.Equal(got))
}
