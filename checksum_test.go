package mediacache

import (
	"context"
	"crypto/rand"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestChecksumFileKnownDigests(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		data string
		want string
	}{
		{"empty", "", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name, []byte(tt.data))
			got, err := ChecksumFile(path, DefaultBlockSize)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChecksumFileDeterministicAcrossBlockSizes(t *testing.T) {
	data := make([]byte, 3*DefaultBlockSize+17)
	_, err := rand.Read(data)
	require.NoError(t, err)
	path := writeFile(t, t.TempDir(), "blob", data)

	first, err := ChecksumFile(path, DefaultBlockSize)
	require.NoError(t, err)

	for _, size := range []int{0, -1, 1, 7, 4096, DefaultBlockSize, 10 * DefaultBlockSize} {
		got, err := ChecksumFile(path, size)
		require.NoError(t, err)
		assert.Equal(t, first, got, "block size %d", size)
	}
}

func TestChecksumFileDetectsSingleByteChange(t *testing.T) {
	dir := t.TempDir()
	data := []byte("the quick brown fox jumps over the lazy dog")
	a := writeFile(t, dir, "a", data)

	changed := append([]byte(nil), data...)
	changed[10] ^= 0x01
	b := writeFile(t, dir, "b", changed)

	sumA, err := ChecksumFile(a, DefaultBlockSize)
	require.NoError(t, err)
	sumB, err := ChecksumFile(b, DefaultBlockSize)
	require.NoError(t, err)
	assert.NotEqual(t, sumA, sumB)
}

func TestChecksumFileMissing(t *testing.T) {
	_, err := ChecksumFile(filepath.Join(t.TempDir(), "missing"), DefaultBlockSize)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestChecksumFilesKeepsInputOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		paths = append(paths, writeFile(t, dir, name, []byte(name)))
	}
	paths = append(paths, filepath.Join(dir, "missing"))

	results, err := ChecksumFiles(context.Background(), paths, 1024, 3)
	require.NoError(t, err)
	require.Len(t, results, len(paths))

	for i, r := range results[:5] {
		assert.Equal(t, paths[i], r.Path)
		require.NoError(t, r.Err)
		want, err := ChecksumFile(paths[i], DefaultBlockSize)
		require.NoError(t, err)
		assert.Equal(t, want, r.Checksum)
	}

	last := results[5]
	assert.Equal(t, paths[5], last.Path)
	assert.ErrorIs(t, last.Err, fs.ErrNotExist)
	assert.Empty(t, last.Checksum)
}

func TestChecksumFilesCancelled(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a", []byte("a"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ChecksumFiles(ctx, []string{path}, DefaultBlockSize, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPutChecksumLastWriteWins(t *testing.T) {
	s := openTestStore(t, t.TempDir())

	require.NoError(t, s.PutChecksum("k", "v1", false))
	require.NoError(t, s.PutChecksum("k", "v2", false))

	v, ok := s.GetChecksum("k")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 1, s.ChecksumCount())
}

func TestGetChecksumMiss(t *testing.T) {
	s := openTestStore(t, t.TempDir())

	v, ok := s.GetChecksum("nope")
	assert.False(t, ok)
	assert.Empty(t, v)
	assert.False(t, s.HasChecksum("nope"))
}

func TestPutChecksumFlush(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir)

	require.NoError(t, s.PutChecksum("abc", "path1", true))

	reopened := openTestStore(t, dir)
	v, ok := reopened.GetChecksum("abc")
	require.True(t, ok)
	assert.Equal(t, "path1", v)
}

func TestAllChecksums(t *testing.T) {
	s := openTestStore(t, t.TempDir())
	want := map[string]string{"a": "1", "b": "2", "c": "3"}
	for k, v := range want {
		require.NoError(t, s.PutChecksum(k, v, false))
	}

	// Restartable: two passes see the same entries.
	for range 2 {
		got := make(map[string]string)
		for k, v := range s.AllChecksums() {
			got[k] = v
		}
		assert.Equal(t, want, got)
	}

	n := 0
	for range s.AllChecksums() {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestResetChecksums(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir)
	require.NoError(t, s.PutChecksum("abc", "path1", false))
	require.NoError(t, s.PutPerceptualHash("abc", PerceptualHash{Words: []uint64{1}, Bits: 64}, false))
	require.NoError(t, s.AddLocation(1, 2, "A", false))
	require.NoError(t, s.Persist())

	s.ResetChecksums()

	n := 0
	for range s.AllChecksums() {
		n++
	}
	assert.Zero(t, n)
	assert.False(t, s.HasChecksum("abc"))
	assert.False(t, s.HasPerceptualHash("abc"))
	_, _, ok := s.FindCoordinates("A")
	assert.True(t, ok, "locations survive a reset")

	// Not persisted until asked.
	reopened := openTestStore(t, dir)
	assert.True(t, reopened.HasChecksum("abc"))

	require.NoError(t, s.Persist())
	reopened = openTestStore(t, dir)
	assert.False(t, reopened.HasChecksum("abc"))
	assert.False(t, reopened.HasPerceptualHash("abc"))
}
