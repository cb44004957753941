package mapgen

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/battlemap/pkg/geom"
	"github.com/Faultbox/battlemap/pkg/geom/clip"
	"github.com/Faultbox/battlemap/pkg/rng"
)

// riverBaseWidths maps River weight 1..10 to the main channel half-width.
var riverBaseWidths = [...]float64{30, 45, 60, 75, 90, 110, 130, 155, 185, 220}

const (
	riverEndInset        = 100 // start/end stay this far from the rectangle corners
	riverControlSteps    = 5
	riverJitter          = 200
	riverSmoothSegments  = 15
	riverCoarseSegments  = 10
	riverCoarseWidth     = 2200 // maps wider than this use coarse smoothing
	riverWaveFrequency   = 0.4
	riverWaveAmplitude   = 0.3
	riverZoneID          = "river-unified"
	tributaryAttachSkip  = 10 // centerline points excluded at each end
	tributaryMinLength   = 150
	tributaryMaxLength   = 350
	tributaryShrink      = 0.6
	tributaryTries       = 2
	tributarySegments    = 6
	tributaryBoundsSlack = 10
	tributaryTipTaper    = 0.4
)

// ErrNoWater is returned when the boolean pipeline leaves no polygon.
var ErrNoWater = errors.New("hydrology produced no water polygon")

// mergeWater turns the ribbons into the final water polygon. Tests replace it
// to exercise the failure path.
var mergeWater = unifyWater

// riverBaseWidth returns the half-width for a positive River weight.
func riverBaseWidth(weight int) float64 {
	i := min(max(weight, 1), len(riverBaseWidths)) - 1
	return riverBaseWidths[i]
}

// generateHydrology builds the unified river polygon. It reports false when
// the boolean geometry fails; the failure is logged, not returned.
func generateHydrology(r *rng.Rand, cfg Config, weight int, log *zap.Logger) (Zone, bool) {
	base := riverBaseWidth(weight)
	play := playableBounds(cfg)

	start, end := riverEndpoints(r, play)

	segments := riverSmoothSegments
	if cfg.Width > riverCoarseWidth {
		segments = riverCoarseSegments
	}

	control := make([]geom.Vec2, 0, riverControlSteps+1)
	control = append(control, start)
	control = append(control, jitteredPath(r, start, end, riverControlSteps, riverJitter, play)...)
	control = append(control, end)
	centerline := geom.SmoothPath(control, segments)

	mainRibbon := ribbon(centerline, func(i int) float64 {
		return base * (1 + math.Sin(float64(i)*riverWaveFrequency)*cfg.RiverWidthVariation*riverWaveAmplitude)
	})

	branches, err := growTributaries(r, cfg, centerline, mainRibbon, base, play)
	if err != nil {
		log.Warn("hydrology skipped", zap.Error(err))
		return Zone{}, false
	}

	rings := append([]clip.Ring{mainRibbon}, branches...)
	water, err := mergeWater(rings, play)
	if err != nil {
		log.Warn("hydrology skipped", zap.Error(err), zap.Int("ribbons", len(rings)))
		return Zone{}, false
	}

	log.Debug("river generated",
		zap.Int("tributaries", len(branches)),
		zap.Int("vertices", len(water)),
	)
	center := geom.Vec2{X: cfg.Width / 2, Y: cfg.Height / 2}
	return newZone(riverZoneID, River, center, 0, Polygon(water)), true
}

// riverEndpoints flips a coin for orientation and picks a start and end on
// opposite edges of the playable rectangle.
func riverEndpoints(r *rng.Rand, play geom.Bounds) (start, end geom.Vec2) {
	if r.Float() > 0.5 {
		start = geom.Vec2{X: r.Range(play.MinX+riverEndInset, play.MaxX-riverEndInset), Y: play.MinY}
		end = geom.Vec2{X: r.Range(play.MinX+riverEndInset, play.MaxX-riverEndInset), Y: play.MaxY}
		return start, end
	}
	start = geom.Vec2{X: play.MinX, Y: r.Range(play.MinY+riverEndInset, play.MaxY-riverEndInset)}
	end = geom.Vec2{X: play.MaxX, Y: r.Range(play.MinY+riverEndInset, play.MaxY-riverEndInset)}
	return start, end
}

// jitteredPath returns steps-1 interior points between start and end, each
// displaced by up to jitter and clamped to rect.
func jitteredPath(r *rng.Rand, start, end geom.Vec2, steps int, jitter float64, rect geom.Bounds) []geom.Vec2 {
	points := make([]geom.Vec2, 0, steps-1)
	for i := 1; i < steps; i++ {
		t := float64(i) / float64(steps)
		base := start.Add(end.Sub(start).Scale(t))
		x := clampf(base.X+r.Range(-jitter, jitter), rect.MinX, rect.MaxX)
		y := clampf(base.Y+r.Range(-jitter, jitter), rect.MinY, rect.MaxY)
		points = append(points, geom.Vec2{X: x, Y: y})
	}
	return points
}

// ribbon offsets path to both sides by halfWidth(i) along the local normal and
// returns the open ring: left side forward, right side reversed.
func ribbon(path []geom.Vec2, halfWidth func(i int) float64) clip.Ring {
	n := len(path)
	left := make([]geom.Vec2, 0, n)
	right := make([]geom.Vec2, 0, n)
	for i, cur := range path {
		next := path[min(i+1, n-1)]
		prev := path[max(i-1, 0)]
		d := next.Sub(prev)
		mag := d.Length()
		if mag == 0 {
			mag = 1
		}
		normal := geom.Vec2{X: -d.Y / mag, Y: d.X / mag}
		off := normal.Scale(halfWidth(i))
		left = append(left, cur.Add(off))
		right = append(right, cur.Sub(off))
	}
	ring := left
	for i := len(right) - 1; i >= 0; i-- {
		ring = append(ring, right[i])
	}
	return ring
}

// growTributaries attempts up to 4×count branches off the centerline and
// returns the accepted ribbons.
func growTributaries(r *rng.Rand, cfg Config, centerline []geom.Vec2, mainRibbon clip.Ring, base float64, play geom.Bounds) ([]clip.Ring, error) {
	want := cfg.RiverTributaries
	if want <= 0 || len(centerline) < 2*tributaryAttachSkip+1 {
		return nil, nil
	}

	var accepted []clip.Ring
	width := base * cfg.RiverTribWidthRatio
	for attempt := 0; len(accepted) < want && attempt < want*4; attempt++ {
		idx := r.Int(tributaryAttachSkip, len(centerline)-tributaryAttachSkip)
		at, prev := centerline[idx], centerline[idx-1]

		flow := math.Atan2(at.Y-prev.Y, at.X-prev.X)
		side := -1.0
		if r.Float() > 0.5 {
			side = 1
		}
		angle := flow + side*cfg.RiverBranchAngle*math.Pi/180
		length := r.Range(tributaryMinLength, tributaryMaxLength)

		for try := 0; try < tributaryTries; try++ {
			nodes := geom.SmoothPath([]geom.Vec2{
				at,
				at.Polar(angle, length*0.5),
				at.Polar(angle, length),
			}, tributarySegments)
			last := len(nodes) - 1
			branch := ribbon(nodes, func(i int) float64 {
				return tributaryHalfWidth(width, i, last)
			})

			ok, err := tributaryFits(nodes, branch, mainRibbon, accepted, play)
			if err != nil {
				return nil, err
			}
			if ok {
				accepted = append(accepted, branch)
				break
			}
			length *= tributaryShrink
		}
	}
	return accepted, nil
}

// tributaryHalfWidth tapers a branch from full width at the junction to
// tributaryTipTaper of it at node last.
func tributaryHalfWidth(width float64, i, last int) float64 {
	if last <= 0 {
		return width
	}
	return width * (1 - (1-tributaryTipTaper)*float64(i)/float64(last))
}

// tributaryFits rejects branches that leave the playable rectangle, fold back
// into the main channel, or overlap an accepted branch.
func tributaryFits(nodes []geom.Vec2, branch, mainRibbon clip.Ring, accepted []clip.Ring, play geom.Bounds) (bool, error) {
	slack := play.Expand(tributaryBoundsSlack)
	for _, n := range nodes {
		if !slack.Contains(n) {
			return false, nil
		}
	}
	if geom.PointInPolygon(nodes[len(nodes)-1], mainRibbon) {
		return false, nil
	}
	bb := geom.BoundsOf(branch)
	for _, other := range accepted {
		if !bb.Intersects(geom.BoundsOf(other)) {
			continue
		}
		overlap, err := clip.Overlaps(branch, other)
		if err != nil {
			return false, err
		}
		if overlap {
			return false, nil
		}
	}
	return true, nil
}

// unifyWater unions the ribbons, clips them to the playable rectangle and
// keeps the largest resulting contour.
func unifyWater(rings []clip.Ring, play geom.Bounds) (clip.Ring, error) {
	merged, err := clip.Union(rings)
	if err != nil {
		return nil, err
	}
	if len(merged) == 0 {
		return nil, ErrNoWater
	}

	rect := clip.Ring{
		{X: play.MinX, Y: play.MinY},
		{X: play.MaxX, Y: play.MinY},
		{X: play.MaxX, Y: play.MaxY},
		{X: play.MinX, Y: play.MaxY},
	}
	clipped, err := clip.Intersect(merged, rect)
	if err != nil {
		return nil, err
	}

	best := clip.Largest(clipped)
	if best == nil {
		return nil, ErrNoWater
	}
	// Snap away floating-point overshoot at the clip edges.
	for i, v := range best {
		best[i] = geom.Vec2{
			X: clampf(v.X, play.MinX, play.MaxX),
			Y: clampf(v.Y, play.MinY, play.MaxY),
		}
	}
	return best, nil
}
