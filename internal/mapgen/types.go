// Package mapgen synthesizes tactical battle maps from a configuration.
//
// Generate is the single entry point. It is synchronous and owns all of its
// state, so independent calls may run concurrently without coordination.
package mapgen

import (
	"fmt"

	"github.com/Faultbox/battlemap/pkg/geom"
)

// Biome identifies a terrain type.
type Biome string

// Biome kinds.
const (
	Forest Biome = "Forest"
	Rocks  Biome = "Rocks"
	Ruins  Biome = "Ruins"
	Mud    Biome = "Mud"
	River  Biome = "River"
)

// ClusterBiomes lists the biomes placed by the cluster grid, in the order
// their cluster counts are assigned.
var ClusterBiomes = []Biome{Forest, Rocks, Ruins, Mud}

// AllBiomes lists every biome that carries a weight.
var AllBiomes = []Biome{Forest, Rocks, Ruins, Mud, River}

// ParseBiome converts a case-sensitive biome name.
func ParseBiome(s string) (Biome, error) {
	for _, b := range AllBiomes {
		if string(b) == s {
			return b, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBiome, s)
}

// ShapeKind tags the Shape variant.
type ShapeKind uint8

// Shape kinds.
const (
	ShapeCircle ShapeKind = iota
	ShapePolygon
)

// String returns the shape kind name.
func (k ShapeKind) String() string {
	switch k {
	case ShapeCircle:
		return "circle"
	case ShapePolygon:
		return "polygon"
	default:
		return fmt.Sprintf("ShapeKind(%d)", k)
	}
}

// Shape is either a circle (Center, Radius) or a polygon (Vertices, an open
// ring). Fields belonging to the other variant are zero.
type Shape struct {
	Kind     ShapeKind
	Center   geom.Vec2
	Radius   float64
	Vertices []geom.Vec2
}

// Circle builds a circle shape.
func Circle(center geom.Vec2, radius float64) Shape {
	return Shape{Kind: ShapeCircle, Center: center, Radius: radius}
}

// Polygon builds a polygon shape from an open ring.
func Polygon(vertices []geom.Vec2) Shape {
	return Shape{Kind: ShapePolygon, Vertices: vertices}
}

// Bounds returns the tight bounds of the shape.
func (s Shape) Bounds() geom.Bounds {
	switch s.Kind {
	case ShapeCircle:
		return geom.CircleBounds(s.Center, s.Radius)
	case ShapePolygon:
		return geom.BoundsOf(s.Vertices)
	default:
		panic("mapgen: unknown shape kind " + s.Kind.String())
	}
}

// Contains reports whether p lies inside the shape grown by pad.
func (s Shape) Contains(p geom.Vec2, pad float64) bool {
	switch s.Kind {
	case ShapeCircle:
		return p.Distance(s.Center) < s.Radius+pad
	case ShapePolygon:
		if geom.PointInPolygon(p, s.Vertices) {
			return true
		}
		return pad > 0 && geom.PolygonBoundaryDistance(p, s.Vertices) < pad
	default:
		panic("mapgen: unknown shape kind " + s.Kind.String())
	}
}

// Occludes reports whether segment ab passes within pad of the shape.
func (s Shape) Occludes(a, b geom.Vec2, pad float64) bool {
	switch s.Kind {
	case ShapeCircle:
		return geom.SegmentIntersectsCircle(a, b, s.Center, s.Radius+pad)
	case ShapePolygon:
		n := len(s.Vertices)
		for i := 0; i < n; i++ {
			v1, v2 := s.Vertices[i], s.Vertices[(i+1)%n]
			if geom.SegmentsIntersect(a, b, v1, v2) {
				return true
			}
			if pad > 0 && geom.SegmentDistance(a, b, v1, v2) <= pad {
				return true
			}
		}
		return geom.PointInPolygon(a, s.Vertices) || geom.PointInPolygon(b, s.Vertices)
	default:
		panic("mapgen: unknown shape kind " + s.Kind.String())
	}
}

// Obstacle is a solid or cosmetic map feature.
type Obstacle struct {
	ID       string
	Biome    Biome
	Blocking bool
	Shape    Shape
	Bounds   geom.Bounds
}

// newObstacle fills Bounds from the shape.
func newObstacle(id string, biome Biome, blocking bool, shape Shape) Obstacle {
	return Obstacle{ID: id, Biome: biome, Blocking: blocking, Shape: shape, Bounds: shape.Bounds()}
}

// Occludes reports whether segment ab is obstructed by the obstacle grown by
// pad. The padded bounds are checked first.
func (o Obstacle) Occludes(a, b geom.Vec2, pad float64) bool {
	if !geom.BoundsOf([]geom.Vec2{a, b}).Intersects(o.Bounds.Expand(pad)) {
		return false
	}
	return o.Shape.Occludes(a, b, pad)
}

// Covers reports whether p lies inside the obstacle grown by pad. The padded
// bounds are checked first.
func (o Obstacle) Covers(p geom.Vec2, pad float64) bool {
	if !o.Bounds.Expand(pad).Contains(p) {
		return false
	}
	return o.Shape.Contains(p, pad)
}

// Zone is a biome-tagged area used for rendering and gameplay effects. Zones
// never block navigation.
type Zone struct {
	ID     string
	Biome  Biome
	Center geom.Vec2
	Radius float64
	Shape  Shape
	Bounds geom.Bounds
}

// newZone fills Bounds from the shape.
func newZone(id string, biome Biome, center geom.Vec2, radius float64, shape Shape) Zone {
	return Zone{ID: id, Biome: biome, Center: center, Radius: radius, Shape: shape, Bounds: shape.Bounds()}
}

// NavGraph is a walkability graph. Edges index into Nodes, are undirected and
// stored once.
type NavGraph struct {
	Nodes []geom.Vec2
	Edges [][2]int
}

// Map is a generated battle map. It is not modified after Generate returns;
// WithRespawn is the only supported update.
type Map struct {
	Config         Config
	Obstacles      []Obstacle
	Zones          []Zone
	POIs           []geom.Vec2
	ClusterCenters []geom.Vec2
	Nav            NavGraph
	Respawn        geom.Vec2
}

// WithRespawn returns a copy of m with the respawn point replaced. The
// generated content is shared, not regenerated.
func (m *Map) WithRespawn(p geom.Vec2) *Map {
	cp := *m
	cp.Respawn = p
	return &cp
}

// ObstacleAt returns the first obstacle whose shape contains p.
func (m *Map) ObstacleAt(p geom.Vec2) (Obstacle, bool) {
	for _, o := range m.Obstacles {
		if !o.Bounds.Contains(p) {
			continue
		}
		hit := false
		switch o.Shape.Kind {
		case ShapeCircle:
			hit = p.Distance(o.Shape.Center) <= o.Shape.Radius
		case ShapePolygon:
			hit = geom.PointInPolygon(p, o.Shape.Vertices)
		}
		if hit {
			return o, true
		}
	}
	return Obstacle{}, false
}

// ZonesOf returns the zones of a biome in generation order.
func (m *Map) ZonesOf(b Biome) []Zone {
	var out []Zone
	for _, z := range m.Zones {
		if z.Biome == b {
			out = append(out, z)
		}
	}
	return out
}

// ObstaclesOf returns the obstacles of a biome in generation order.
func (m *Map) ObstaclesOf(b Biome) []Obstacle {
	var out []Obstacle
	for _, o := range m.Obstacles {
		if o.Biome == b {
			out = append(out, o)
		}
	}
	return out
}

// Summary holds aggregate counts for a generated map.
type Summary struct {
	Seed      string        `yaml:"seed"`
	Width     float64       `yaml:"width"`
	Height    float64       `yaml:"height"`
	Obstacles map[Biome]int `yaml:"obstacles"`
	Zones     map[Biome]int `yaml:"zones"`
	POIs      int           `yaml:"pois"`
	Nodes     int           `yaml:"nodes"`
	Edges     int           `yaml:"edges"`
	River     string        `yaml:"river"`
}

// Summary counts the map's contents.
func (m *Map) Summary() Summary {
	s := Summary{
		Seed:      m.Config.Seed,
		Width:     m.Config.Width,
		Height:    m.Config.Height,
		Obstacles: make(map[Biome]int),
		Zones:     make(map[Biome]int),
		POIs:      len(m.POIs),
		Nodes:     len(m.Nav.Nodes),
		Edges:     len(m.Nav.Edges),
		River:     RiverScaleLabel(m.Config.Biomes[River]),
	}
	for _, o := range m.Obstacles {
		s.Obstacles[o.Biome]++
	}
	for _, z := range m.Zones {
		s.Zones[z.Biome]++
	}
	return s
}
