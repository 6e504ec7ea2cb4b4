package mediacache

import "errors"

var (
	ErrInvalidHashSize   = errors.New("mediacache: hash size squared must be a power of two of at least 64")
	ErrNoChecksumFile    = errors.New("mediacache: checksum file missing")
	ErrInvalidCoordinate = errors.New("mediacache: coordinate is not a finite number")
)
