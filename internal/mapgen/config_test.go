package mapgen

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"default", 2000, 2000, false},
		{"zero width", 0, 2000, true},
		{"negative height", 2000, -5, true},
		{"tiny", 1, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Width, cfg.Height = tt.w, tt.h
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDimensions)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClamped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ObstacleDensity = 3
	cfg.Biomes = map[Biome]int{Forest: 20, Rocks: -2}
	cfg.POICount = -1
	cfg.RiverTributaries = -4
	cfg.RiverWidthVariation = -1
	cfg.RiverTribWidthRatio = 1.5

	got := cfg.Clamped()

	assert.Equal(t, MaxDensity, got.ObstacleDensity)
	assert.Equal(t, map[Biome]int{Forest: 10, Rocks: 0, Ruins: 0, Mud: 0, River: 0}, got.Biomes)
	assert.Equal(t, 0, got.POICount)
	assert.Equal(t, 0, got.RiverTributaries)
	assert.Equal(t, 0.0, got.RiverWidthVariation)
	assert.Equal(t, 0.95, got.RiverTribWidthRatio)

	// The input map is untouched.
	assert.Equal(t, 20, cfg.Biomes[Forest])
}

func TestClampedLowDensity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ObstacleDensity = 0
	assert.Equal(t, MinDensity, cfg.Clamped().ObstacleDensity)
}

func TestClone(t *testing.T) {
	cfg := DefaultConfig()
	cp := cfg.Clone()
	cp.Biomes[Mud] = 9
	assert.Equal(t, 3, cfg.Biomes[Mud])
	assert.Equal(t, 9, cp.Biomes[Mud])
}

func TestRiverScaleLabel(t *testing.T) {
	tests := []struct {
		weight int
		want   string
	}{
		{-3, "None"},
		{0, "None"},
		{1, "Creek"},
		{6, "Deep River"},
		{10, "Mega Flow"},
		{11, "Mega Flow"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RiverScaleLabel(tt.weight), "weight %d", tt.weight)
	}
}

func TestParseBiome(t *testing.T) {
	for _, b := range AllBiomes {
		got, err := ParseBiome(string(b))
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}

	_, err := ParseBiome("forest")
	assert.ErrorIs(t, err, ErrUnknownBiome)
	_, err = ParseBiome("Lava")
	assert.ErrorIs(t, err, ErrUnknownBiome)
}

func TestNewSeed(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-Z]{6}$`)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		s := NewSeed()
		assert.Regexp(t, pattern, s)
		seen[s] = true
	}
	assert.Greater(t, len(seen), 1)
}
