package mediacache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/sourcegraph/conc/pool"
)

// DefaultBlockSize is the read size used when hashing files.
const DefaultBlockSize = 65536

// ChecksumFile returns the lowercase hex SHA-256 digest of the file at path,
// reading it blockSize bytes at a time. A blockSize <= 0 uses DefaultBlockSize.
func ChecksumFile(path string, blockSize int) (string, error) {
	return checksumFile(context.Background(), path, blockSize)
}

func checksumFile(ctx context.Context, path string, blockSize int) (string, error) {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, blockSize)
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := f.Read(buf)
		h.Write(buf[:n])
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ChecksumResult is the outcome of hashing one file in a batch.
type ChecksumResult struct {
	Path     string
	Checksum string
	Err      error
}

// ChecksumFiles hashes paths with at most concurrency files in flight, each
// read blockSize bytes at a time. Results are returned in input order; a
// failure to read one file is recorded in its result and does not stop the
// others. The returned error is only set when ctx is done before the batch
// completes.
func ChecksumFiles(ctx context.Context, paths []string, blockSize, concurrency int) ([]ChecksumResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]ChecksumResult, len(paths))
	p := pool.New().WithMaxGoroutines(concurrency).WithContext(ctx)

	for i, path := range paths {
		p.Go(func(ctx context.Context) error {
			sum, err := checksumFile(ctx, path, blockSize)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			results[i] = ChecksumResult{Path: path, Checksum: sum, Err: err}
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// HasChecksum reports whether key is cached.
func (s *Store) HasChecksum(key string) bool {
	_, ok := s.checksums[key]
	return ok
}

// GetChecksum returns the value stored for key.
func (s *Store) GetChecksum(key string) (string, bool) {
	v, ok := s.checksums[key]
	return v, ok
}

// PutChecksum stores value under key, replacing any previous value. With
// flush set the checksum and perceptual hash files are rewritten.
func (s *Store) PutChecksum(key, value string, flush bool) error {
	s.checksums[key] = value
	if flush {
		return s.Persist()
	}
	return nil
}

// AllChecksums iterates over the cached checksums in no particular order.
// The store must not be mutated while the sequence is being ranged over.
func (s *Store) AllChecksums() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for k, v := range s.checksums {
			if !yield(k, v) {
				return
			}
		}
	}
}

// ChecksumCount returns the number of cached checksums.
func (s *Store) ChecksumCount() int {
	return len(s.checksums)
}

// ResetChecksums drops all checksums and perceptual hashes from memory. The
// files on disk are untouched until Persist is called.
func (s *Store) ResetChecksums() {
	s.checksums = make(map[string]string)
	s.phashes = make(map[string]PerceptualHash)
}
