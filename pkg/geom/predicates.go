package geom

import "math"

// PointInPolygon reports whether p is inside the ring using even-odd ray
// casting. The ring may be open or closed.
//
// Points exactly on an edge are implementation-defined: the half-open
// crossing rule counts a horizontal ray hitting an edge's lower endpoint but
// not its upper one, so boundary points may land on either side.
func PointInPolygon(p Vec2, ring []Vec2) bool {
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// SegmentsIntersect reports whether segment ab crosses segment cd.
// Parallel and collinear segments never intersect, even when they overlap.
func SegmentsIntersect(a, b, c, d Vec2) bool {
	den := (b.X-a.X)*(d.Y-c.Y) - (b.Y-a.Y)*(d.X-c.X)
	if den == 0 {
		return false
	}
	t := ((c.X-a.X)*(d.Y-c.Y) - (c.Y-a.Y)*(d.X-c.X)) / den
	u := ((c.X-a.X)*(b.Y-a.Y) - (c.Y-a.Y)*(b.X-a.X)) / den
	return t >= 0 && t <= 1 && u >= 0 && u <= 1
}

// ClosestPointOnSegment returns the point of segment ab nearest to p.
func ClosestPointOnSegment(p, a, b Vec2) Vec2 {
	d := b.Sub(a)
	lenSq := d.Dot(d)
	if lenSq == 0 {
		return a
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(d)/lenSq))
	return a.Add(d.Scale(t))
}

// PointSegmentDistance returns the distance from p to segment ab.
func PointSegmentDistance(p, a, b Vec2) float64 {
	return p.Distance(ClosestPointOnSegment(p, a, b))
}

// SegmentIntersectsCircle reports whether segment ab comes within radius of
// center.
func SegmentIntersectsCircle(a, b, center Vec2, radius float64) bool {
	return PointSegmentDistance(center, a, b) <= radius
}

// SegmentDistance returns the minimum distance between segments ab and cd.
func SegmentDistance(a, b, c, d Vec2) float64 {
	if SegmentsIntersect(a, b, c, d) {
		return 0
	}
	return math.Min(
		math.Min(PointSegmentDistance(a, c, d), PointSegmentDistance(b, c, d)),
		math.Min(PointSegmentDistance(c, a, b), PointSegmentDistance(d, a, b)),
	)
}

// PolygonBoundaryDistance returns the distance from p to the nearest edge of
// the ring.
func PolygonBoundaryDistance(p Vec2, ring []Vec2) float64 {
	best := math.Inf(1)
	for i := range ring {
		d := PointSegmentDistance(p, ring[i], ring[(i+1)%len(ring)])
		if d < best {
			best = d
		}
	}
	return best
}

// PolygonArea returns the signed shoelace area of the ring. Counter-clockwise
// rings (in a y-up frame) are positive.
func PolygonArea(ring []Vec2) float64 {
	area := 0.0
	for i := range ring {
		j := (i + 1) % len(ring)
		area += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return area / 2
}
