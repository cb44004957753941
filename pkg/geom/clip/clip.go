// Package clip exposes polygon boolean operations behind a narrow interface.
//
// Rings are open vertex lists in map coordinates. Results are returned as a
// flat list of contours; holes are not distinguished from outer rings.
package clip

import (
	"errors"
	"fmt"

	polyclip "github.com/ctessum/polyclip-go"

	"github.com/Faultbox/battlemap/pkg/geom"
)

// Errors returned by boolean operations.
var (
	ErrDegenerateInput = errors.New("clip: ring has fewer than 3 vertices")
	ErrClipFailed      = errors.New("clip: boolean operation failed")
)

// Ring is an open polygon ring.
type Ring = []geom.Vec2

// Union merges all rings into a set of disjoint contours.
func Union(rings []Ring) ([]Ring, error) {
	if len(rings) == 0 {
		return nil, nil
	}
	acc, err := toPolygon(rings[0])
	if err != nil {
		return nil, err
	}
	for _, r := range rings[1:] {
		p, err := toPolygon(r)
		if err != nil {
			return nil, err
		}
		if acc, err = construct(acc, polyclip.UNION, p); err != nil {
			return nil, err
		}
	}
	return fromPolygon(acc), nil
}

// Intersect returns the overlap of the subject contours with the clip ring.
func Intersect(subject []Ring, with Ring) ([]Ring, error) {
	var s polyclip.Polygon
	for _, r := range subject {
		p, err := toPolygon(r)
		if err != nil {
			return nil, err
		}
		s = append(s, p...)
	}
	c, err := toPolygon(with)
	if err != nil {
		return nil, err
	}
	out, err := construct(s, polyclip.INTERSECTION, c)
	if err != nil {
		return nil, err
	}
	return fromPolygon(out), nil
}

// Overlaps reports whether two rings share any area.
func Overlaps(a, b Ring) (bool, error) {
	out, err := Intersect([]Ring{a}, b)
	if err != nil {
		return false, err
	}
	return len(out) > 0, nil
}

// construct runs a polyclip operation, converting a panic inside the sweep
// into ErrClipFailed.
func construct(subject polyclip.Polygon, op polyclip.Op, clipping polyclip.Polygon) (out polyclip.Polygon, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %v", ErrClipFailed, r)
		}
	}()
	return subject.Construct(op, clipping), nil
}

func toPolygon(r Ring) (polyclip.Polygon, error) {
	if len(r) < 3 {
		return nil, ErrDegenerateInput
	}
	c := make(polyclip.Contour, 0, len(r))
	for _, v := range r {
		c = append(c, polyclip.Point{X: v.X, Y: v.Y})
	}
	// Drop an explicit closing vertex; polyclip closes contours implicitly.
	if len(c) > 3 && c[0] == c[len(c)-1] {
		c = c[:len(c)-1]
	}
	return polyclip.Polygon{c}, nil
}

func fromPolygon(p polyclip.Polygon) []Ring {
	out := make([]Ring, 0, len(p))
	for _, c := range p {
		if len(c) < 3 {
			continue
		}
		r := make(Ring, 0, len(c))
		for _, pt := range c {
			r = append(r, geom.Vec2{X: pt.X, Y: pt.Y})
		}
		out = append(out, r)
	}
	return out
}

// Largest returns the ring with the greatest absolute area, or nil.
func Largest(rings []Ring) Ring {
	var best Ring
	bestArea := 0.0
	for _, r := range rings {
		if a := abs(geom.PolygonArea(r)); a > bestArea {
			best, bestArea = r, a
		}
	}
	return best
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
