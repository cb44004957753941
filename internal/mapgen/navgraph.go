package mapgen

import (
	"math"

	"github.com/Faultbox/battlemap/pkg/geom"
)

const (
	navMargin        = BorderThickness + 20
	navBaseStep      = 65
	navBaseWidth     = 1200
	navStepDivisor   = 32
	defaultClearance = 18
	navEdgeTolerance = 2
	navMissing       = -1
)

// navNeighbors are the forward grid offsets (column, row) tried from each
// node: down, right, down-right and up-right. Together they cover all eight
// directions without adding an edge twice.
var navNeighbors = [4][2]int{{1, 0}, {0, 1}, {1, 1}, {-1, 1}}

// NavStep returns the grid spacing for a map width. Wider maps use a coarser
// grid to bound the node count.
func NavStep(width float64) float64 {
	return math.Max(1, navBaseStep+math.Floor((width-navBaseWidth)/navStepDivisor))
}

// Clearance returns the navigation padding for cfg.
func (c Config) Clearance() float64 {
	if c.UnitRadius > 0 {
		return c.UnitRadius
	}
	return defaultClearance
}

// buildNavGraph lays a grid over the map, drops nodes covered by blocking
// obstacles grown by the unit clearance, and links surviving neighbors whose
// connecting segment is unobstructed.
//
// The graph is not guaranteed to be connected.
func buildNavGraph(cfg Config, obstacles []Obstacle) NavGraph {
	pad := cfg.Clearance()
	step := NavStep(cfg.Width)

	var blocking []Obstacle
	for _, o := range obstacles {
		if o.Blocking {
			blocking = append(blocking, o)
		}
	}

	var g NavGraph
	var grid [][]int // grid[column][row] -> node index or navMissing
	for i := 0; ; i++ {
		x := navMargin + float64(i)*step
		if x >= cfg.Width-navMargin {
			break
		}
		var column []int
		for j := 0; ; j++ {
			y := navMargin + float64(j)*step
			if y >= cfg.Height-navMargin {
				break
			}
			p := geom.Vec2{X: x, Y: y}
			if covered(p, blocking, pad) {
				column = append(column, navMissing)
				continue
			}
			column = append(column, len(g.Nodes))
			g.Nodes = append(g.Nodes, p)
		}
		grid = append(grid, column)
	}

	edgePad := pad - navEdgeTolerance
	for i, column := range grid {
		for j, u := range column {
			if u == navMissing {
				continue
			}
			for _, off := range navNeighbors {
				ni, nj := i+off[0], j+off[1]
				if ni < 0 || ni >= len(grid) || nj < 0 || nj >= len(grid[ni]) {
					continue
				}
				v := grid[ni][nj]
				if v == navMissing {
					continue
				}
				if !obstructed(g.Nodes[u], g.Nodes[v], blocking, edgePad) {
					g.Edges = append(g.Edges, [2]int{u, v})
				}
			}
		}
	}
	return g
}

func covered(p geom.Vec2, blocking []Obstacle, pad float64) bool {
	for _, o := range blocking {
		if o.Covers(p, pad) {
			return true
		}
	}
	return false
}

func obstructed(a, b geom.Vec2, blocking []Obstacle, pad float64) bool {
	for _, o := range blocking {
		if o.Occludes(a, b, pad) {
			return true
		}
	}
	return false
}
