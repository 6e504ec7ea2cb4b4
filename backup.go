package mediacache

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
)

// BackupTimeFormat is the suffix layout of backup file names.
const BackupTimeFormat = "2006-01-02_15-04-05"

// BackupChecksumFiles copies the checksum and perceptual hash files to
// "<file>-<timestamp>" siblings and returns the checksum backup path. Both
// copies share one timestamp. A missing perceptual hash file is skipped.
func (s *Store) BackupChecksumFiles() (string, error) {
	suffix := s.now().Format(BackupTimeFormat)

	checksumBackup := s.checksumPath + "-" + suffix
	if err := copyFile(s.checksumPath, checksumBackup); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNoChecksumFile, s.checksumPath)
		}
		return "", fmt.Errorf("backup checksums: %w", err)
	}

	phashBackup := s.phashPath + "-" + suffix
	if err := copyFile(s.phashPath, phashBackup); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("backup phashes: %w", err)
		}
		phashBackup = ""
	}

	s.log.WithFields(logrus.Fields{
		"checksums": checksumBackup,
		"phashes":   phashBackup,
	}).Info("backup written")

	return checksumBackup, nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	_, err = io.Copy(out, in)
	return err
}
