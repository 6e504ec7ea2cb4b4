package mediacache

import (
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aweris/mediacache/internal/compression"
)

// CompressionLevel selects the zstd level of the perceptual hash file.
type CompressionLevel = compression.Level

// Compression levels for the perceptual hash file.
const (
	CompressionOff     = compression.LevelOff
	CompressionFastest = compression.LevelFastest
	CompressionDefault = compression.LevelDefault
	CompressionBetter  = compression.LevelBetter
)

// OpenOptions configures a Store.
type OpenOptions struct {
	Logger      logrus.FieldLogger
	Compression CompressionLevel
	Clock       func() time.Time
}

// OpenOption is a functional option for configuring Open.
type OpenOption func(*OpenOptions)

func defaultOptions() *OpenOptions {
	return &OpenOptions{
		Logger:      logrus.StandardLogger(),
		Compression: CompressionDefault,
		Clock:       time.Now,
	}
}

// WithLogger sets the logger used for load diagnostics and backups.
func WithLogger(l logrus.FieldLogger) OpenOption {
	return func(o *OpenOptions) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithCompression sets the zstd level of the perceptual hash file.
func WithCompression(level CompressionLevel) OpenOption {
	return func(o *OpenOptions) { o.Compression = level }
}

// WithClock sets the time source used for backup file suffixes.
func WithClock(now func() time.Time) OpenOption {
	return func(o *OpenOptions) {
		if now != nil {
			o.Clock = now
		}
	}
}

// DefaultDir returns the per-user application directory.
func DefaultDir() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "mediacache")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "mediacache")
	}
	return ".mediacache"
}
