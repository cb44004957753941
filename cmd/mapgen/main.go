// mapgen is a CLI for generating and inspecting tactical battle maps.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/battlemap/internal/config"
	"github.com/Faultbox/battlemap/internal/logger"
	"github.com/Faultbox/battlemap/internal/mapgen"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "batch":
		cmdBatch(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mapgen - tactical battle map generator

Usage:
  mapgen <command> [options]

Commands:
  generate [options]          Generate one map and print its summary
  batch [options] <count>     Generate count maps concurrently
  config [options] [path]     Write the effective configuration as YAML

Options:
  -config <file>    Config file (default ./mapgen.yaml, then user config dir)
  -seed <seed>      Map seed
  -new-seed         Use a fresh random seed
  -size <preset>    compact, standard, tactical or extended
  -width, -height   Explicit map dimensions
  -density <d>      Obstacle density (0.05-0.8)
  -river <w>        River weight (0 disables hydrology)
  -format <f>       Summary format: text or yaml
  -workers <n>      Concurrent generations for batch
  -debug            Enable debug logging

Examples:
  mapgen generate -seed NEXUS_ALPHA
  mapgen generate -new-seed -size extended -format yaml
  mapgen batch -workers 8 -seed SWEEP 50
  mapgen config ./mapgen.yaml`)
}

// setup parses flags, loads configuration and initializes logging.
func setup(args []string) *config.Config {
	if err := config.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if config.NewSeedRequested() {
		cfg.Map.Seed = mapgen.NewSeed()
	}
	return cfg
}

func cmdGenerate(args []string) {
	cfg := setup(args)
	defer logger.Sync()

	mc, err := cfg.ToMapConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	m := generateTimed(mc)
	if err := writeSummary(os.Stdout, cfg.Output.Format, m.Summary()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdBatch(args []string) {
	cfg := setup(args)
	defer logger.Sync()

	rest := config.Args()
	if len(rest) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mapgen batch [options] <count>")
		os.Exit(1)
	}
	count, err := strconv.Atoi(rest[0])
	if err != nil || count < 1 {
		fmt.Fprintf(os.Stderr, "Invalid count: %s\n", rest[0])
		os.Exit(1)
	}

	base, err := cfg.ToMapConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summaries, err := runBatch(ctx, base, batchSeeds(base.Seed, count, config.NewSeedRequested()), cfg.Batch.Workers)
	if err != nil {
		logger.Error("batch interrupted", zap.Error(err), zap.Int("completed", len(summaries)))
	}
	for _, s := range summaries {
		if err := writeSummary(os.Stdout, cfg.Output.Format, s); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

// batchSeeds derives count seeds from base, or draws fresh ones.
func batchSeeds(base string, count int, fresh bool) []string {
	seeds := make([]string, count)
	for i := range seeds {
		if fresh {
			seeds[i] = mapgen.NewSeed()
		} else {
			seeds[i] = fmt.Sprintf("%s-%d", base, i+1)
		}
	}
	return seeds
}

// runBatch generates one map per seed with at most workers in flight and
// returns the summaries in seed order. On cancellation it returns the
// summaries that finished before the first unfinished seed.
func runBatch(ctx context.Context, base mapgen.Config, seeds []string, workers int) ([]mapgen.Summary, error) {
	out := make([]mapgen.Summary, len(seeds))
	done := make([]bool, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mc := base.Clone()
			mc.Seed = seed
			out[i] = generateTimed(mc).Summary()
			done[i] = true
			return nil
		})
	}
	err := g.Wait()

	n := 0
	for n < len(done) && done[n] {
		n++
	}
	return out[:n], err
}

func generateTimed(mc mapgen.Config) *mapgen.Map {
	start := time.Now()
	m := mapgen.Generate(mc)
	logger.Info("map generated",
		zap.String("seed", mc.Seed),
		zap.Int("obstacles", len(m.Obstacles)),
		zap.Int("zones", len(m.Zones)),
		zap.Duration("took", time.Since(start)),
	)
	return m
}

func cmdConfig(args []string) {
	cfg := setup(args)
	defer logger.Sync()

	path := filepath.Join(config.ConfigDir(), "mapgen.yaml")
	if rest := config.Args(); len(rest) > 0 {
		path = rest[0]
	}

	if err := cfg.SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
