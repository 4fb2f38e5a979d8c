package main

import (
	"flag"
	"io"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/framestats/config"
	"github.com/pthm-cable/framestats/game"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run parses args, runs the game and returns the process exit code.
func run(args []string, stdout io.Writer) int {
	// CLI flags
	fs := flag.NewFlagSet("framestats", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := fs.Bool("headless", false, "Run without graphics")
	logStats := fs.Bool("log-stats", false, "Output frame stats via slog in graphical mode")
	statsEvery := fs.Int("stats-every", 300, "Frames between stats log lines (0 = never)")
	logLevel := fs.String("log-level", "info", "Log level: debug, info, warn, error")
	seed := fs.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := fs.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := fs.String("output-dir", "", "Directory for frames.csv and replayable samples")
	writeConfig := fs.String("write-config", "", "Write the effective config to this path and exit")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	// Set up slog (JSON to stdout for structured logging)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid log level", "level", *logLevel, "error", err)
		return 1
	}
	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	cfg := config.Cfg()

	if *writeConfig != "" {
		if err := cfg.WriteYAML(*writeConfig); err != nil {
			slog.Error("failed to write config", "error", err)
			return 1
		}
		return 0
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Simulation.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:       rngSeed,
		Headless:   *headless,
		LogStats:   *logStats,
		StatsEvery: *statsEvery,
		OutputDir:  *outputDir,
	}

	if *headless {
		// Headless mode - no raylib, fixed and variable timelines only
		g, err := game.NewGame(cfg, opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			return 1
		}
		defer g.Unload()

		slog.Info("starting headless run",
			"seed", rngSeed,
			"max_frames", *maxFrames,
			"stats_every", *statsEvery,
		)

		for {
			g.UpdateHeadless()

			if *maxFrames > 0 && g.Frame() >= *maxFrames {
				slog.Info("max frames reached", "frame", g.Frame())
				return 0
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer g.Unload()

	g.Run(*maxFrames)
	return 0
}
