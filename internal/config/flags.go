package config

import (
	"flag"
	"sort"
	"strings"

	"github.com/Faultbox/battlemap/internal/mapgen"
)

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagSeed    = flag.String("seed", "", "Map seed")
	flagNewSeed = flag.Bool("new-seed", false, "Generate with a fresh random seed")
	flagSize    = flag.String("size", "", "Size preset: "+presetNames())
	flagWidth   = flag.Float64("width", 0, "Map width")
	flagHeight  = flag.Float64("height", 0, "Map height")
	flagDensity = flag.Float64("density", 0, "Obstacle density (0.05-0.8)")
	flagRiver   = flag.Int("river", -1, "River weight (0-10, 0 disables hydrology)")
	flagFormat  = flag.String("format", "", "Summary format: text or yaml")
	flagWorkers = flag.Int("workers", 0, "Concurrent generations in batch mode")
)

// presetNames lists the size presets from smallest to largest.
func presetNames() string {
	names := make([]string, 0, len(mapgen.SizePresets))
	for name := range mapgen.SizePresets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return mapgen.SizePresets[names[i]] < mapgen.SizePresets[names[j]]
	})
	return strings.Join(names, ", ")
}

// ParseFlags parses command-line flags from args, typically the arguments
// following the subcommand.
func ParseFlags(args []string) error {
	return flag.CommandLine.Parse(args)
}

// Args returns the positional arguments left after flag parsing.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via -config.
func ConfigPath() string {
	return *flagConfig
}

// NewSeedRequested reports whether -new-seed was given.
func NewSeedRequested() bool {
	return *flagNewSeed
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagSeed != "" {
		cfg.Map.Seed = *flagSeed
	}
	if *flagSize != "" {
		cfg.Map.Size = *flagSize
	}
	if *flagWidth > 0 {
		cfg.Map.Size = ""
		cfg.Map.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Map.Size = ""
		cfg.Map.Height = *flagHeight
	}
	if *flagDensity > 0 {
		cfg.Map.ObstacleDensity = *flagDensity
	}
	if *flagRiver >= 0 {
		if cfg.Map.Biomes == nil {
			cfg.Map.Biomes = make(map[string]int)
		}
		cfg.Map.Biomes["River"] = *flagRiver
	}
	if *flagFormat != "" {
		cfg.Output.Format = *flagFormat
	}
	if *flagWorkers > 0 {
		cfg.Batch.Workers = *flagWorkers
	}
}
