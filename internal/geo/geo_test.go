package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
		tol  float64
	}{
		{"same point", Point{12.5, -7.25}, Point{12.5, -7.25}, 0, 0},
		{"0.001 deg east on equator", Point{0, 0}, Point{0, 0.001}, 111.19, 0.01},
		{"0.001 deg north", Point{0, 0}, Point{0.001, 0}, 111.19, 0.01},
		{"east at 60N shrinks by cos", Point{60, 0}, Point{60, 0.001}, 55.6, 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.a, tt.b), tt.tol)
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Point{37.7749, -122.4194}
	b := Point{37.7849, -122.4094}
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}
