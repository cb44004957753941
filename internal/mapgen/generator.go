package mapgen

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/battlemap/internal/logger"
	"github.com/Faultbox/battlemap/pkg/geom"
	"github.com/Faultbox/battlemap/pkg/rng"
)

// Layout constants shared by the generation stages.
const (
	BorderThickness = 40  // map edge band outside the playable rectangle
	SafeMargin      = 140 // keeps clusters and the respawn away from edges
	poiInset        = 100 // extra inset for points of interest
)

// Generate builds a complete map from cfg. The same configuration always
// yields the same map.
//
// cfg is not validated; callers should run Validate and Clamped first.
// Hydrology failures are logged and produce a map without a river.
func Generate(cfg Config) *Map {
	cfg = cfg.Clone()
	log := logger.ForRun(cfg.Seed, cfg.Width, cfg.Height)
	log.Debug("generating map")

	r := rng.New(cfg.Seed)
	ids := make(idAllocator)

	pois := placePOIs(r, cfg)

	var zones []Zone
	if weight := cfg.Biomes[River]; weight > 0 {
		// Hydrology draws from its own stream so the River weight does not
		// shift cluster placement.
		if z, ok := generateHydrology(r.Fork("hydrology"), cfg, weight, log); ok {
			zones = append(zones, z)
		}
	}

	c := placeClusters(r, cfg, pois, ids)
	zones = append(zones, c.zones...)

	nav := buildNavGraph(cfg, c.obstacles)

	m := &Map{
		Config:         cfg,
		Obstacles:      c.obstacles,
		Zones:          zones,
		POIs:           pois,
		ClusterCenters: c.centers,
		Nav:            nav,
		Respawn:        geom.Vec2{X: SafeMargin, Y: cfg.Height - SafeMargin},
	}

	log.Debug("map generated",
		zap.Int("obstacles", len(m.Obstacles)),
		zap.Int("zones", len(m.Zones)),
		zap.Int("nodes", len(nav.Nodes)),
		zap.Int("edges", len(nav.Edges)),
	)
	return m
}

// placePOIs scatters points of interest inside the safe margin.
func placePOIs(r *rng.Rand, cfg Config) []geom.Vec2 {
	lo := float64(SafeMargin + poiInset)
	pois := make([]geom.Vec2, 0, cfg.POICount)
	for i := 0; i < cfg.POICount; i++ {
		x := r.Range(lo, cfg.Width-lo)
		y := r.Range(lo, cfg.Height-lo)
		pois = append(pois, geom.Vec2{X: x, Y: y})
	}
	return pois
}

// playableBounds is the map rectangle inside the border band.
func playableBounds(cfg Config) geom.Bounds {
	return geom.Bounds{
		MinX: BorderThickness,
		MinY: BorderThickness,
		MaxX: cfg.Width - BorderThickness,
		MaxY: cfg.Height - BorderThickness,
	}
}

// idAllocator hands out run-unique identifiers per prefix.
type idAllocator map[string]int

func (a idAllocator) next(prefix string) string {
	a[prefix]++
	return fmt.Sprintf("%s-%d", prefix, a[prefix])
}
