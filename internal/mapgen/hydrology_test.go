package mapgen

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/battlemap/internal/logger"
	"github.com/Faultbox/battlemap/pkg/geom"
	"github.com/Faultbox/battlemap/pkg/geom/clip"
	"github.com/Faultbox/battlemap/pkg/rng"
)

func TestRiverBaseWidthMonotonic(t *testing.T) {
	prev := 0.0
	for w := 1; w <= 10; w++ {
		got := riverBaseWidth(w)
		assert.Greater(t, got, prev, "weight %d", w)
		prev = got
	}
	assert.Equal(t, 30.0, riverBaseWidth(1))
	assert.Equal(t, 220.0, riverBaseWidth(10))
	assert.Equal(t, 220.0, riverBaseWidth(14), "weights above 10 use the widest channel")
}

func TestRibbon(t *testing.T) {
	path := []geom.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 20, Y: 0}}
	ring := ribbon(path, func(int) float64 { return 5 })

	require.Len(t, ring, 6)
	// Left side runs forward, right side comes back.
	assert.Equal(t, geom.Vec2{X: 0, Y: 5}, ring[0])
	assert.Equal(t, geom.Vec2{X: 20, Y: 5}, ring[2])
	assert.Equal(t, geom.Vec2{X: 20, Y: -5}, ring[3])
	assert.Equal(t, geom.Vec2{X: 0, Y: -5}, ring[5])
	assert.InDelta(t, 200, math.Abs(geom.PolygonArea(ring)), 1e-9)
}

func TestRibbonSinglePoint(t *testing.T) {
	ring := ribbon([]geom.Vec2{{X: 3, Y: 4}}, func(int) float64 { return 2 })
	require.Len(t, ring, 2)
	// A zero-length direction leaves the points on the centerline.
	assert.Equal(t, geom.Vec2{X: 3, Y: 4}, ring[0])
}

func TestJitteredPathClamped(t *testing.T) {
	r := rng.New("jitter")
	rect := geom.Bounds{MinX: 40, MinY: 40, MaxX: 360, MaxY: 360}
	pts := jitteredPath(r, geom.Vec2{X: 40, Y: 200}, geom.Vec2{X: 360, Y: 200}, 5, 200, rect)

	require.Len(t, pts, 4)
	for _, p := range pts {
		assert.True(t, rect.Contains(p), "point %v escaped %+v", p, rect)
	}
}

func TestRiverEndpointsOnOppositeEdges(t *testing.T) {
	play := geom.Bounds{MinX: 40, MinY: 40, MaxX: 1960, MaxY: 1960}
	for _, seed := range propertySeeds {
		start, end := riverEndpoints(rng.New(seed), play)
		vertical := start.Y == play.MinY && end.Y == play.MaxY
		horizontal := start.X == play.MinX && end.X == play.MaxX
		assert.True(t, vertical || horizontal, "seed %s: %v -> %v", seed, start, end)
	}
}

func TestGenerateHydrology(t *testing.T) {
	cfg := DefaultConfig()
	core, logs := observer.New(zapcore.DebugLevel)

	z, ok := generateHydrology(rng.New("hydro"), cfg, 6, zap.New(core))
	require.True(t, ok, "hydrology failed: %v", logs.All())

	assert.Equal(t, River, z.Biome)
	assert.Equal(t, riverZoneID, z.ID)
	assert.Equal(t, z.Shape.Bounds(), z.Bounds)
	assert.GreaterOrEqual(t, len(z.Shape.Vertices), 3)
	assert.Equal(t, 1, logs.FilterMessage("river generated").Len())

	play := playableBounds(cfg)
	for _, v := range z.Shape.Vertices {
		assert.True(t, play.Contains(v))
	}
}

func TestTributaryFitsRejectsEscapes(t *testing.T) {
	play := geom.Bounds{MinX: 40, MinY: 40, MaxX: 400, MaxY: 400}
	mainRibbon := clip.Ring{{X: 40, Y: 190}, {X: 400, Y: 190}, {X: 400, Y: 210}, {X: 40, Y: 210}}
	width := func(int) float64 { return 5 }

	inside := []geom.Vec2{{X: 200, Y: 200}, {X: 200, Y: 260}, {X: 200, Y: 320}}
	ok, err := tributaryFits(inside, ribbon(inside, width), mainRibbon, nil, play)
	require.NoError(t, err)
	assert.True(t, ok)

	escaping := []geom.Vec2{{X: 200, Y: 200}, {X: 200, Y: 400}, {X: 200, Y: 470}}
	ok, err = tributaryFits(escaping, ribbon(escaping, width), mainRibbon, nil, play)
	require.NoError(t, err)
	assert.False(t, ok, "branch leaving the playable rectangle was accepted")

	foldBack := []geom.Vec2{{X: 200, Y: 200}, {X: 230, Y: 202}, {X: 260, Y: 201}}
	ok, err = tributaryFits(foldBack, ribbon(foldBack, width), mainRibbon, nil, play)
	require.NoError(t, err)
	assert.False(t, ok, "branch ending inside the main channel was accepted")

	crossing := []geom.Vec2{{X: 180, Y: 200}, {X: 200, Y: 260}, {X: 220, Y: 320}}
	ok, err = tributaryFits(crossing, ribbon(crossing, width), mainRibbon, []clip.Ring{ribbon(inside, width)}, play)
	require.NoError(t, err)
	assert.False(t, ok, "branch overlapping an accepted branch was accepted")
}

func TestUnifyWaterKeepsLargest(t *testing.T) {
	play := geom.Bounds{MinX: 40, MinY: 40, MaxX: 1000, MaxY: 1000}
	big := clip.Ring{{X: 100, Y: 100}, {X: 500, Y: 100}, {X: 500, Y: 300}, {X: 100, Y: 300}}
	small := clip.Ring{{X: 700, Y: 700}, {X: 750, Y: 700}, {X: 750, Y: 750}, {X: 700, Y: 750}}

	got, err := unifyWater([]clip.Ring{small, big}, play)
	require.NoError(t, err)
	assert.InDelta(t, 400*200, math.Abs(geom.PolygonArea(got)), 1e-6)
}

func TestUnifyWaterClipsToPlayable(t *testing.T) {
	play := geom.Bounds{MinX: 40, MinY: 40, MaxX: 1000, MaxY: 1000}
	spill := clip.Ring{{X: 0, Y: 400}, {X: 1100, Y: 400}, {X: 1100, Y: 500}, {X: 0, Y: 500}}

	got, err := unifyWater([]clip.Ring{spill}, play)
	require.NoError(t, err)
	b := geom.BoundsOf(got)
	assert.InDelta(t, 40.0, b.MinX, 1e-9)
	assert.InDelta(t, 1000.0, b.MaxX, 1e-9)
	assert.InDelta(t, 960*100, math.Abs(geom.PolygonArea(got)), 1e-6)
}

func TestUnifyWaterErrors(t *testing.T) {
	play := geom.Bounds{MinX: 40, MinY: 40, MaxX: 1000, MaxY: 1000}

	_, err := unifyWater([]clip.Ring{{{X: 1, Y: 1}, {X: 2, Y: 2}}}, play)
	assert.True(t, errors.Is(err, clip.ErrDegenerateInput), "got %v", err)

	outside := clip.Ring{{X: 2000, Y: 2000}, {X: 2100, Y: 2000}, {X: 2100, Y: 2100}}
	_, err = unifyWater([]clip.Ring{outside}, play)
	assert.ErrorIs(t, err, ErrNoWater)
}

// failMerge makes the water merge fail for the rest of the test.
func failMerge(t *testing.T) {
	t.Helper()
	orig := mergeWater
	mergeWater = func([]clip.Ring, geom.Bounds) (clip.Ring, error) {
		return nil, fmt.Errorf("%w: sweep event out of order", clip.ErrClipFailed)
	}
	t.Cleanup(func() { mergeWater = orig })
}

func TestGenerateHydrologySkipsOnClipFailure(t *testing.T) {
	failMerge(t)
	core, logs := observer.New(zapcore.DebugLevel)

	z, ok := generateHydrology(rng.New("hydro"), DefaultConfig(), 6, zap.New(core))
	assert.False(t, ok)
	assert.Equal(t, Zone{}, z)

	skipped := logs.FilterMessage("hydrology skipped")
	require.Equal(t, 1, skipped.Len())
	entry := skipped.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Contains(t, entry.ContextMap()["error"], "boolean operation failed")
	assert.Zero(t, logs.FilterMessage("river generated").Len())
}

func TestGenerateWithoutRiverOnClipFailure(t *testing.T) {
	failMerge(t)
	core, logs := observer.New(zapcore.WarnLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	m := Generate(DefaultConfig())

	assert.Empty(t, m.ZonesOf(River))
	assert.NotEmpty(t, m.Obstacles)
	assert.NotEmpty(t, m.ZonesOf(Forest))
	assert.NotEmpty(t, m.Nav.Nodes)
	assert.NotEmpty(t, m.Nav.Edges)
	assert.Equal(t, 1, logs.FilterMessage("hydrology skipped").Len())

	// Everything else matches a map generated without hydrology.
	dry := Generate(withRiver(DefaultConfig(), 0))
	assert.Equal(t, dry.Obstacles, m.Obstacles)
	assert.Equal(t, dry.Zones, m.Zones)
	assert.Equal(t, dry.Nav, m.Nav)
}

func TestTributaryHalfWidthTapers(t *testing.T) {
	const width, last = 50.0, 6

	assert.Equal(t, width, tributaryHalfWidth(width, 0, last), "junction keeps full width")
	assert.InDelta(t, width*tributaryTipTaper, tributaryHalfWidth(width, last, last), 1e-9)
	for i := 1; i <= last; i++ {
		assert.Less(t, tributaryHalfWidth(width, i, last), tributaryHalfWidth(width, i-1, last), "node %d", i)
	}
	assert.Equal(t, width, tributaryHalfWidth(width, 0, 0))
}
