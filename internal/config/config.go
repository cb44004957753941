// Package config handles generator configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/battlemap/internal/mapgen"
)

// Config holds all CLI settings.
type Config struct {
	Map     MapConfig     `yaml:"map"`
	Output  OutputConfig  `yaml:"output"`
	Batch   BatchConfig   `yaml:"batch"`
	Logging LoggingConfig `yaml:"logging"`
}

// MapConfig holds generation parameters. Size, when set to a preset name,
// overrides Width and Height.
type MapConfig struct {
	Seed            string         `yaml:"seed"`
	Size            string         `yaml:"size"`
	Width           float64        `yaml:"width"`
	Height          float64        `yaml:"height"`
	ObstacleDensity float64        `yaml:"obstacle_density"`
	Biomes          map[string]int `yaml:"biomes"` // weight per biome name
	POICount        int            `yaml:"poi_count"`
	UnitRadius      float64        `yaml:"unit_radius"`
	WallThickness   float64        `yaml:"wall_thickness"`
	River           RiverConfig    `yaml:"river"`
}

// RiverConfig holds hydrology tuning.
type RiverConfig struct {
	Width          float64 `yaml:"width"`
	Tributaries    int     `yaml:"tributaries"`
	TribWidthRatio float64 `yaml:"trib_width_ratio"`
	WidthVariation float64 `yaml:"width_variation"`
	BranchAngle    float64 `yaml:"branch_angle"`
}

// OutputConfig holds summary output settings.
type OutputConfig struct {
	Format string `yaml:"format"` // text or yaml
}

// BatchConfig holds batch generation settings.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config mirroring mapgen.DefaultConfig.
func Default() *Config {
	m := mapgen.DefaultConfig()
	biomes := make(map[string]int, len(m.Biomes))
	for b, w := range m.Biomes {
		biomes[string(b)] = w
	}
	return &Config{
		Map: MapConfig{
			Seed:            m.Seed,
			Width:           m.Width,
			Height:          m.Height,
			ObstacleDensity: m.ObstacleDensity,
			Biomes:          biomes,
			POICount:        m.POICount,
			UnitRadius:      m.UnitRadius,
			WallThickness:   m.WallThickness,
			River: RiverConfig{
				Width:          m.RiverWidth,
				Tributaries:    m.RiverTributaries,
				TribWidthRatio: m.RiverTribWidthRatio,
				WidthVariation: m.RiverWidthVariation,
				BranchAngle:    m.RiverBranchAngle,
			},
		},
		Output: OutputConfig{
			Format: "text",
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// ToMapConfig converts the map section into a validated, clamped
// mapgen.Config.
func (c *Config) ToMapConfig() (mapgen.Config, error) {
	out := mapgen.Config{
		Width:               c.Map.Width,
		Height:              c.Map.Height,
		Seed:                c.Map.Seed,
		ObstacleDensity:     c.Map.ObstacleDensity,
		Biomes:              make(map[mapgen.Biome]int, len(c.Map.Biomes)),
		POICount:            c.Map.POICount,
		UnitRadius:          c.Map.UnitRadius,
		WallThickness:       c.Map.WallThickness,
		RiverWidth:          c.Map.River.Width,
		RiverTributaries:    c.Map.River.Tributaries,
		RiverTribWidthRatio: c.Map.River.TribWidthRatio,
		RiverWidthVariation: c.Map.River.WidthVariation,
		RiverBranchAngle:    c.Map.River.BranchAngle,
	}

	if c.Map.Size != "" {
		side, ok := mapgen.SizePresets[c.Map.Size]
		if !ok {
			return mapgen.Config{}, fmt.Errorf("unknown size preset %q", c.Map.Size)
		}
		out.Width, out.Height = side, side
	}

	for name, w := range c.Map.Biomes {
		b, err := mapgen.ParseBiome(name)
		if err != nil {
			return mapgen.Config{}, err
		}
		out.Biomes[b] = w
	}

	if err := out.Validate(); err != nil {
		return mapgen.Config{}, err
	}
	return out.Clamped(), nil
}
