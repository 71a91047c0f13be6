package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pthm-cable/habitat/config"
	"github.com/pthm-cable/habitat/sim"
	"github.com/pthm-cable/habitat/telemetry"
	"github.com/pthm-cable/habitat/viewer"
)

type runFlags struct {
	configPath string
	gui        bool
	logStats   bool
	outputDir  string
	seed       int64
	steps      int
	delay      int
}

func main() {
	// CLI flags
	var f runFlags
	flag.StringVar(&f.configPath, "config", "", "Path to config.yaml (empty = use defaults)")
	flag.BoolVar(&f.gui, "gui", false, "Show the field in a window (needs a raylib build)")
	flag.BoolVar(&f.logStats, "log-stats", false, "Output window stats via slog")
	flag.StringVar(&f.outputDir, "output-dir", "", "Output directory for CSV logs and config snapshot")
	flag.Int64Var(&f.seed, "seed", 0, "RNG seed (0 = config seed, then time-based)")
	flag.IntVar(&f.steps, "steps", 0, "Number of steps to run (0 = use config)")
	flag.IntVar(&f.delay, "delay", -1, "Delay between steps in ms (-1 = use config)")
	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(f); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// run owns every resource it opens, so deferred closes always happen before
// main exits.
func run(f runFlags) (err error) {
	if err := config.Init(f.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	rngSeed := f.seed
	if rngSeed == 0 {
		rngSeed = cfg.Simulation.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	runSteps := cfg.Simulation.Steps
	if f.steps > 0 {
		runSteps = f.steps
	}

	outputManager, err := telemetry.NewOutputManager(f.outputDir)
	if err != nil {
		return fmt.Errorf("creating output manager: %w", err)
	}
	defer func() {
		if cerr := outputManager.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("closing output: %w", cerr))
		}
	}()
	if err := outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	opts := sim.OptionsFromConfig(cfg, rngSeed)
	opts.LogStats = f.logStats
	opts.Output = outputManager
	if f.delay >= 0 {
		opts.Delay = time.Duration(f.delay) * time.Millisecond
	}

	if f.gui {
		v, err := viewer.New(cfg.Viewer, cfg.World.Depth, cfg.World.Width)
		if err != nil {
			return fmt.Errorf("opening viewer: %w", err)
		}
		defer v.Close()
		opts.Sinks = append(opts.Sinks, v)
		opts.Viability = sim.AllOf(opts.Viability, v)
	} else if f.delay < 0 {
		// Nothing to watch, so don't pace the run.
		opts.Delay = 0
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"steps", runSteps,
		"gui", f.gui,
		"depth", cfg.World.Depth,
		"width", cfg.World.Width,
		"output_dir", outputManager.Dir(),
	)

	s := sim.New(opts)
	s.Simulate(runSteps)
	return nil
}
