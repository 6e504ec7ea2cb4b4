// Package mediacache persists what a media organizer learns about its files:
// content checksums, perceptual image hashes and named places.
//
// All state lives in one application directory as three flat files:
//
//	hash.json      checksum -> value (usually a path), JSON
//	phash.db       key -> perceptual hash, gob + zstd
//	location.json  [{lat, long, name}, ...], JSON
//
// Basic usage:
//
//	s, _ := mediacache.Open(mediacache.DefaultDir())
//
//	// Exact duplicates
//	sum, _ := mediacache.ChecksumFile("IMG_0001.jpg", mediacache.DefaultBlockSize)
//	if prev, ok := s.GetChecksum(sum); ok {
//	    fmt.Println("duplicate of", prev)
//	}
//	s.PutChecksum(sum, "2024/IMG_0001.jpg", true)
//
//	// Near duplicates
//	ph, _ := mediacache.ComputePerceptualHash("IMG_0001.jpg", mediacache.DefaultHashSize)
//	s.PutPerceptualHash(sum, ph, true)
//
//	// Places
//	s.AddLocation(48.8584, 2.2945, "Eiffel Tower", true)
//	name, ok := s.FindNearestName(48.8585, 2.2946, 3000)
//
// A Store is not safe for concurrent use and assumes it is the only writer of
// its directory for the lifetime of the process.
package mediacache
