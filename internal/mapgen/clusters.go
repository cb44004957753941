package mapgen

import (
	"math"

	"github.com/Faultbox/battlemap/pkg/geom"
	"github.com/Faultbox/battlemap/pkg/rng"
)

const (
	clusterCellSize = 250
	maxClusters     = 55
	clusterJitter   = 30
)

// POIClearance is the minimum distance between a cluster center and any
// point of interest.
const POIClearance = 120

// clusterSet collects the output of cluster placement.
type clusterSet struct {
	obstacles []Obstacle
	zones     []Zone
	centers   []geom.Vec2
}

type cell struct{ c, r int }

// placeClusters scatters biome clusters over a shuffled grid of cells inside
// the safe margin.
func placeClusters(r *rng.Rand, cfg Config, pois []geom.Vec2, ids idAllocator) clusterSet {
	cols := max(int(math.Floor((cfg.Width-2*SafeMargin)/clusterCellSize)), 0)
	rows := max(int(math.Floor((cfg.Height-2*SafeMargin)/clusterCellSize)), 0)

	target := min(maxClusters, int(math.Floor(float64(cols*rows)*cfg.ObstacleDensity*1.5)))
	assignments := clusterAssignments(cfg.Biomes, target)

	cells := make([]cell, 0, cols*rows)
	for c := 0; c < cols; c++ {
		for row := 0; row < rows; row++ {
			cells = append(cells, cell{c, row})
		}
	}
	r.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })

	var out clusterSet
	n := min(len(assignments), len(cells))
	for i := 0; i < n; i++ {
		cl := cells[i]
		x := SafeMargin + float64(cl.c*clusterCellSize) + clusterCellSize/2 + r.Range(-clusterJitter, clusterJitter)
		y := SafeMargin + float64(cl.r*clusterCellSize) + clusterCellSize/2 + r.Range(-clusterJitter, clusterJitter)
		center := geom.Vec2{X: x, Y: y}

		if nearAny(center, pois, POIClearance) {
			continue
		}
		out.centers = append(out.centers, center)

		switch assignments[i] {
		case Forest:
			out.forest(r, center, ids)
		case Ruins:
			out.ruins(r, center, cfg.WallThickness, ids)
		case Rocks:
			out.rocks(r, center, ids)
		case Mud:
			out.mud(r, center, ids)
		}
	}
	return out
}

// clusterAssignments splits target across the cluster biomes in proportion
// to their weights, rounding half up.
func clusterAssignments(weights map[Biome]int, target int) []Biome {
	total := 0
	for _, b := range ClusterBiomes {
		total += weights[b]
	}
	if total <= 0 {
		return nil
	}
	var out []Biome
	for _, b := range ClusterBiomes {
		count := int(math.Floor(float64(weights[b])/float64(total)*float64(target) + 0.5))
		for i := 0; i < count; i++ {
			out = append(out, b)
		}
	}
	return out
}

func nearAny(p geom.Vec2, points []geom.Vec2, dist float64) bool {
	for _, q := range points {
		if p.Distance(q) < dist {
			return true
		}
	}
	return false
}

// forest adds a blob zone with a few blocking trees inside it.
func (s *clusterSet) forest(r *rng.Rand, center geom.Vec2, ids idAllocator) {
	radius := r.Range(110, 160)
	blob := geom.Blob(r, center, radius, 10)
	s.zones = append(s.zones, newZone(ids.next("forest"), Forest, center, radius, Polygon(blob)))

	trees := r.Int(3, 5)
	for i := 0; i < trees; i++ {
		a := r.Float() * math.Pi * 2
		d := math.Sqrt(r.Float()) * radius * 0.8
		size := r.Range(10, 16)
		s.obstacles = append(s.obstacles, newObstacle(ids.next("tree"), Forest, true, Circle(center.Polar(a, d), size)))
	}
}

// ruinWall is a wall offset from the cluster center before rotation.
type ruinWall struct {
	off  geom.Vec2
	w, h float64
}

// ruins adds two crossing walls rotated by a random angle.
func (s *clusterSet) ruins(r *rng.Rand, center geom.Vec2, thick float64, ids idAllocator) {
	size := r.Range(120, 160)
	a := r.Float() * math.Pi * 2
	walls := [2]ruinWall{
		{geom.Vec2{}, size, thick},
		{geom.Vec2{X: size / 2, Y: size / 2}, thick, size},
	}
	for _, w := range walls {
		at := center.Add(w.off.Rotate(a))
		s.obstacles = append(s.obstacles, newObstacle(ids.next("wall"), Ruins, true, Polygon(geom.Rect(at, w.w, w.h, a))))
	}
}

// rocks adds three irregular boulders near the center.
func (s *clusterSet) rocks(r *rng.Rand, center geom.Vec2, ids idAllocator) {
	for i := 0; i < 3; i++ {
		a := r.Float() * math.Pi * 2
		d := r.Range(0, 50)
		at := center.Polar(a, d)
		ring := geom.RandomPolygon(r, at, r.Range(25, 45), 3, 5)
		s.obstacles = append(s.obstacles, newObstacle(ids.next("rock"), Rocks, true, Polygon(ring)))
	}
}

// mud adds a non-blocking blob zone.
func (s *clusterSet) mud(r *rng.Rand, center geom.Vec2, ids idAllocator) {
	radius := r.Range(100, 150)
	blob := geom.Blob(r, center, radius, 8)
	s.zones = append(s.zones, newZone(ids.next("mud"), Mud, center, radius, Polygon(blob)))
}
