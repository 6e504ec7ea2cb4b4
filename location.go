package mediacache

import (
	"fmt"
	"math"
	"slices"

	"github.com/aweris/mediacache/internal/geo"
)

// Location is a named coordinate.
type Location struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"long"`
	Name string  `json:"name"`
}

// AddLocation appends a named coordinate. Duplicates are kept. With flush set
// the location file is rewritten. NaN or infinite coordinates are rejected
// with ErrInvalidCoordinate and leave the list unchanged.
func (s *Store) AddLocation(lat, lon float64, name string, flush bool) error {
	if !finite(lat) || !finite(lon) {
		return fmt.Errorf("%w: %v, %v", ErrInvalidCoordinate, lat, lon)
	}
	s.locations = append(s.locations, Location{Lat: lat, Lon: lon, Name: name})
	if flush {
		return s.PersistLocations()
	}
	return nil
}

// FindNearestName returns the name of the closest stored location that lies
// within thresholdMeters of (lat, lon). On equal distances the earlier
// location wins.
func (s *Store) FindNearestName(lat, lon, thresholdMeters float64) (string, bool) {
	query := geo.Point{Lat: lat, Lon: lon}

	var (
		name  string
		found bool
		best  float64
	)
	for _, loc := range s.locations {
		d := geo.Distance(query, geo.Point{Lat: loc.Lat, Lon: loc.Lon})
		// Written negated so a NaN distance or threshold never qualifies.
		if !(d <= thresholdMeters) {
			continue
		}
		if !found || d < best {
			name, best, found = loc.Name, d, true
		}
	}
	return name, found
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// FindCoordinates returns the coordinates of the first location called name.
func (s *Store) FindCoordinates(name string) (lat, lon float64, ok bool) {
	for _, loc := range s.locations {
		if loc.Name == name {
			return loc.Lat, loc.Lon, true
		}
	}
	return 0, 0, false
}

// Locations returns a copy of the stored locations in insertion order.
func (s *Store) Locations() []Location {
	return slices.Clone(s.locations)
}
