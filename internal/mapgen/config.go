package mapgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Errors returned by configuration checks.
var (
	ErrInvalidDimensions = errors.New("map width and height must be positive")
	ErrUnknownBiome      = errors.New("unknown biome")
)

// Config holds the generation parameters. Values are expected to be in range;
// use Clamped at the boundary before calling Generate.
type Config struct {
	Width           float64
	Height          float64
	Seed            string
	ObstacleDensity float64 // [0.05, 0.8]
	Biomes          map[Biome]int
	POICount        int
	UnitRadius      float64 // nav clearance
	WallThickness   float64

	// RiverWidth is carried for configuration compatibility; the channel
	// width comes from the River weight.
	RiverWidth          float64
	RiverTributaries    int
	RiverTribWidthRatio float64 // (0, 1)
	RiverWidthVariation float64
	RiverBranchAngle    float64 // degrees
}

// Parameter ranges enforced by Clamped.
const (
	MinDensity = 0.05
	MaxDensity = 0.8
	MinWeight  = 0
	MaxWeight  = 10
)

// Size presets for square maps.
var SizePresets = map[string]float64{
	"compact":  1200,
	"standard": 1600,
	"tactical": 2000,
	"extended": 2400,
}

// riverScaleLabels names each River weight.
var riverScaleLabels = []string{
	"None", "Creek", "Brook", "Stream", "Canal", "River",
	"Deep River", "Large River", "Wide Flow", "Massive", "Mega Flow",
}

// RiverScaleLabel returns the display name for a River weight.
func RiverScaleLabel(weight int) string {
	if weight < 0 {
		weight = 0
	}
	if weight >= len(riverScaleLabels) {
		weight = len(riverScaleLabels) - 1
	}
	return riverScaleLabels[weight]
}

// DefaultConfig returns the reference configuration.
func DefaultConfig() Config {
	return Config{
		Width:           2000,
		Height:          2000,
		Seed:            "NEXUS_ALPHA",
		ObstacleDensity: 0.32,
		Biomes: map[Biome]int{
			Forest: 5,
			Rocks:  4,
			Ruins:  5,
			Mud:    3,
			River:  6,
		},
		POICount:            5,
		UnitRadius:          18,
		WallThickness:       12,
		RiverWidth:          120,
		RiverTributaries:    3,
		RiverTribWidthRatio: 0.55,
		RiverWidthVariation: 0.4,
		RiverBranchAngle:    45,
	}
}

// Validate rejects structurally invalid configurations.
func (c Config) Validate() error {
	if !(c.Width > 0) || !(c.Height > 0) {
		return fmt.Errorf("%w: got %vx%v", ErrInvalidDimensions, c.Width, c.Height)
	}
	return nil
}

// Clamped returns a copy with scalar inputs forced into their valid ranges.
// The biome map is copied.
func (c Config) Clamped() Config {
	out := c
	out.ObstacleDensity = clampf(c.ObstacleDensity, MinDensity, MaxDensity)
	out.Biomes = make(map[Biome]int, len(AllBiomes))
	for _, b := range AllBiomes {
		out.Biomes[b] = clampi(c.Biomes[b], MinWeight, MaxWeight)
	}
	out.POICount = max(c.POICount, 0)
	out.RiverTributaries = max(c.RiverTributaries, 0)
	out.RiverWidthVariation = math.Max(c.RiverWidthVariation, 0)
	out.RiverTribWidthRatio = clampf(c.RiverTribWidthRatio, 0.05, 0.95)
	return out
}

// Clone returns a deep copy.
func (c Config) Clone() Config {
	out := c
	out.Biomes = make(map[Biome]int, len(c.Biomes))
	for k, v := range c.Biomes {
		out.Biomes[k] = v
	}
	return out
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampi(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

const seedAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewSeed returns a random uppercase base-36 seed for seed rotation.
func NewSeed() string {
	var sb strings.Builder
	n := big.NewInt(int64(len(seedAlphabet)))
	for i := 0; i < 6; i++ {
		v, err := rand.Int(rand.Reader, n)
		if err != nil {
			panic("failed to generate seed: " + err.Error())
		}
		sb.WriteByte(seedAlphabet[v.Int64()])
	}
	return sb.String()
}
