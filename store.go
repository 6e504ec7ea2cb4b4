package mediacache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aweris/mediacache/internal/codec"
	"github.com/aweris/mediacache/internal/compression"
)

// Backing file names inside the application directory.
const (
	ChecksumFileName       = "hash.json"
	PerceptualHashFileName = "phash.db"
	LocationFileName       = "location.json"
)

// Store caches checksums, perceptual hashes and locations for one
// application directory. Mutations stay in memory until persisted, either by
// passing flush=true to a mutating method or by calling Persist or
// PersistLocations.
type Store struct {
	dir          string
	checksumPath string
	phashPath    string
	locationPath string

	checksums map[string]string
	phashes   map[string]PerceptualHash
	locations []Location

	text       codec.Codec
	binary     codec.Codec
	compressor *compression.Compressor

	log logrus.FieldLogger
	now func() time.Time
}

// Open creates appDir and its backing files when missing and loads them.
// Empty or malformed files load as empty collections; only failures to create
// the directory or the files are returned.
func Open(appDir string, opts ...OpenOption) (*Store, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	if err := os.MkdirAll(appDir, 0755); err != nil {
		return nil, fmt.Errorf("create app dir: %w", err)
	}

	compressor, err := compression.NewCompressor(options.Compression)
	if err != nil {
		return nil, fmt.Errorf("create compressor: %w", err)
	}

	s := &Store{
		dir:          appDir,
		checksumPath: filepath.Join(appDir, ChecksumFileName),
		phashPath:    filepath.Join(appDir, PerceptualHashFileName),
		locationPath: filepath.Join(appDir, LocationFileName),
		checksums:    make(map[string]string),
		phashes:      make(map[string]PerceptualHash),
		text:         codec.JSON{},
		binary:       codec.NewGob(compressor),
		compressor:   compressor,
		log:          options.Logger.WithField("component", "mediacache"),
		now:          options.Clock,
	}

	for _, path := range []string{s.checksumPath, s.phashPath, s.locationPath} {
		if err := codec.Touch(path); err != nil {
			compressor.Close()
			return nil, fmt.Errorf("create %s: %w", filepath.Base(path), err)
		}
	}

	s.load(s.checksumPath, s.text, &s.checksums)
	s.load(s.phashPath, s.binary, &s.phashes)
	s.load(s.locationPath, s.text, &s.locations)

	// A JSON "null" decodes into nil collections.
	if s.checksums == nil {
		s.checksums = make(map[string]string)
	}
	if s.phashes == nil {
		s.phashes = make(map[string]PerceptualHash)
	}

	s.log.WithFields(logrus.Fields{
		"dir":       appDir,
		"checksums": len(s.checksums),
		"phashes":   len(s.phashes),
		"locations": len(s.locations),
	}).Debug("store opened")

	return s, nil
}

// load decodes path into v. On failure v is left empty.
func (s *Store) load(path string, c codec.Codec, v any) {
	err := codec.Load(path, c, v)
	switch {
	case err == nil:
	case errors.Is(err, codec.ErrEmpty):
		s.log.WithField("file", path).Debug("empty file, starting empty")
	default:
		s.log.WithError(err).WithField("file", path).Debug("unreadable file, starting empty")
		resetTarget(v)
	}
}

// resetTarget clears a collection a failed decode may have partially filled.
func resetTarget(v any) {
	switch t := v.(type) {
	case *map[string]string:
		*t = make(map[string]string)
	case *map[string]PerceptualHash:
		*t = make(map[string]PerceptualHash)
	case *[]Location:
		*t = nil
	}
}

// Dir returns the application directory.
func (s *Store) Dir() string { return s.dir }

// ChecksumPath returns the path of the checksum file.
func (s *Store) ChecksumPath() string { return s.checksumPath }

// PerceptualHashPath returns the path of the perceptual hash file.
func (s *Store) PerceptualHashPath() string { return s.phashPath }

// LocationPath returns the path of the location file.
func (s *Store) LocationPath() string { return s.locationPath }

// Persist overwrites the checksum and perceptual hash files with the
// in-memory maps.
func (s *Store) Persist() error {
	if err := codec.Save(s.checksumPath, s.text, s.checksums); err != nil {
		return fmt.Errorf("persist checksums: %w", err)
	}
	if err := codec.Save(s.phashPath, s.binary, s.phashes); err != nil {
		return fmt.Errorf("persist phashes: %w", err)
	}
	return nil
}

// PersistLocations overwrites the location file with the in-memory list.
func (s *Store) PersistLocations() error {
	locations := s.locations
	if locations == nil {
		locations = []Location{}
	}
	if err := codec.Save(s.locationPath, s.text, locations); err != nil {
		return fmt.Errorf("persist locations: %w", err)
	}
	return nil
}

// Close releases the compressor. It does not persist.
func (s *Store) Close() error {
	return s.compressor.Close()
}
