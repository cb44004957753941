package geom

import (
	"math"
	"sort"

	"github.com/Faultbox/battlemap/pkg/rng"
)

// RandomPolygon returns an irregular convex-ish ring of minVertices to
// maxVertices points around center. Each vertex sits at 60-100% of radius.
func RandomPolygon(r *rng.Rand, center Vec2, radius float64, minVertices, maxVertices int) []Vec2 {
	count := r.Int(minVertices, maxVertices)
	angles := make([]float64, count)
	for i := range angles {
		angles[i] = r.Float() * math.Pi * 2
	}
	sort.Float64s(angles)

	ring := make([]Vec2, 0, count)
	for _, a := range angles {
		ring = append(ring, center.Polar(a, radius*(0.6+r.Float()*0.4)))
	}
	return ring
}

// Blob returns an organic ring with evenly spaced angles and radii perturbed
// to 70-130% of radius.
func Blob(r *rng.Rand, center Vec2, radius float64, points int) []Vec2 {
	ring := make([]Vec2, 0, points)
	for i := 0; i < points; i++ {
		a := float64(i) / float64(points) * math.Pi * 2
		ring = append(ring, center.Polar(a, radius*(0.7+r.Float()*0.6)))
	}
	return ring
}

// Rect returns the corners of a w×h rectangle centered on center and rotated
// by angle radians.
func Rect(center Vec2, w, h, angle float64) []Vec2 {
	hw, hh := w/2, h/2
	corners := [4]Vec2{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}
	ring := make([]Vec2, 0, 4)
	for _, c := range corners {
		ring = append(ring, center.Add(c.Rotate(angle)))
	}
	return ring
}
