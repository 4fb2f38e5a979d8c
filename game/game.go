// Package game is a demo host loop that feeds the stats overlay: a fixed-step
// update, a variable-step update and a render pass, each timed separately.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/framestats/config"
	"github.com/pthm-cable/framestats/overlay"
	"github.com/pthm-cable/framestats/renderer"
	"github.com/pthm-cable/framestats/systems"
	"github.com/pthm-cable/framestats/telemetry"
)

// Options configures a game instance.
type Options struct {
	Seed       int64
	Headless   bool
	LogStats   bool
	StatsEvery int    // frames between stats log lines (headless or -log-stats)
	OutputDir  string // frames.csv and replayable samples; empty disables
}

// Game holds the complete host state.
type Game struct {
	cfg  *config.Config
	opts Options
	rng  *rand.Rand

	timers   *telemetry.Timers
	registry *systems.Registry
	world    *systems.World
	stats    *overlay.StatsOverlay
	output   *telemetry.OutputManager

	// Rendering (nil when headless)
	surface *renderer.Surface
	sprites *renderer.SpriteRenderer

	showOverlay   bool
	worldAttached bool
	accumulator   float32
	frame         int
}

// NewGame creates a game. In graphical mode the raylib window must already exist.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	g := &Game{
		cfg:           cfg,
		opts:          opts,
		rng:           rand.New(rand.NewSource(opts.Seed)),
		timers:        telemetry.NewTimers(cfg.Timing.Window),
		registry:      systems.NewRegistry(),
		showOverlay:   cfg.Overlay.Enabled,
		worldAttached: true,
	}
	registerSystems(g.registry)

	if !opts.Headless {
		surface, err := renderer.NewSurface(cfg.Overlay.FontPath, int32(cfg.Overlay.FontSize), cfg.Overlay.Colors.Shadow.Color())
		if err != nil {
			return nil, fmt.Errorf("creating overlay surface: %w", err)
		}
		g.surface = surface
		g.sprites = renderer.NewSpriteRenderer(surface)
	}

	g.stats = overlay.New(g.timers, overlayLayout(cfg), overlayTheme(cfg))

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		g.Unload()
		return nil, err
	}
	g.output = output

	if err := g.rebuildWorld(); err != nil {
		g.Unload()
		return nil, err
	}
	return g, nil
}

// overlayLayout maps the overlay config onto a layout.
func overlayLayout(cfg *config.Config) overlay.Layout {
	o := cfg.Overlay
	return overlay.Layout{
		Margin:      float32(o.Margin),
		Left:        float32(o.Left),
		Top:         float32(o.Top),
		RowHeight:   float32(o.RowHeight),
		LabelInset:  float32(o.LabelInset),
		CountOffset: float32(o.CountOffset),
		TimeOffset:  float32(o.TimeOffset),
		HeaderX:     float32(o.HeaderX),
		HeaderY:     float32(o.HeaderY),
	}
}

// overlayTheme maps the overlay config onto a theme.
func overlayTheme(cfg *config.Config) overlay.Theme {
	c := cfg.Overlay.Colors
	return overlay.Theme{
		Header:   c.Header.Color(),
		Timeline: c.Timeline.Color(),
		System:   c.System.Color(),
		Bucket:   c.Bucket.Color(),
		Total:    c.Total.Color(),
		FontSize: float32(cfg.Overlay.FontSize),
	}
}

// rebuildWorld replaces the workload, as a scene transition would.
// The old world is closed so that nothing keeps reading it.
func (g *Game) rebuildWorld() error {
	world, err := newWorkload(g.cfg, g.rng, g.registry, g.sprites)
	if err != nil {
		return fmt.Errorf("building world: %w", err)
	}
	old := g.world
	g.world = world
	old.Close()

	if g.worldAttached {
		g.stats.SetWorld(world)
	}
	slog.Info("world built", "entities", world.NumEntities(), "attached", g.worldAttached)
	return nil
}

// setWorldAttached attaches or detaches the world from the overlay.
func (g *Game) setWorldAttached(attached bool) {
	g.worldAttached = attached
	if attached {
		g.stats.SetWorld(g.world)
	} else {
		g.stats.SetWorld(nil)
	}
}

// Frame returns the number of completed frames.
func (g *Game) Frame() int {
	return g.frame
}

// Update advances the fixed and variable timelines by dt seconds.
func (g *Game) Update(dt float32) {
	g.updateFixed(dt)
	g.updateVariable(dt)
}

// updateFixed runs as many fixed steps as the accumulated time allows.
func (g *Game) updateFixed(dt float32) {
	defer g.timers.Track(telemetry.PurposeEngine, telemetry.TimelineFixed)()

	fixedDT := g.cfg.Derived.FixedDT32
	maxSteps := g.cfg.Simulation.MaxFixedSteps
	g.accumulator += dt

	steps := 0
	g.timers.Start(telemetry.PurposeApplication, telemetry.TimelineFixed)
	for g.accumulator >= fixedDT && steps < maxSteps {
		g.world.Step(telemetry.TimelineFixed, fixedDT)
		g.accumulator -= fixedDT
		steps++
	}
	g.timers.Stop(telemetry.PurposeApplication, telemetry.TimelineFixed)

	// Drop the backlog rather than spiral when we cannot keep up
	if steps == maxSteps && g.accumulator >= fixedDT {
		g.accumulator = 0
	}
}

// updateVariable runs once per frame with the real frame time.
func (g *Game) updateVariable(dt float32) {
	defer g.timers.Track(telemetry.PurposeEngine, telemetry.TimelineVariable)()

	if !g.opts.Headless {
		g.handleInput()
	}

	g.timers.Start(telemetry.PurposeApplication, telemetry.TimelineVariable)
	g.world.Step(telemetry.TimelineVariable, dt)
	g.timers.Stop(telemetry.PurposeApplication, telemetry.TimelineVariable)
}

// Draw renders the frame: world sprites, controls and the stats overlay.
func (g *Game) Draw() {
	g.timers.Start(telemetry.PurposeEngine, telemetry.TimelineRender)

	g.surface.BeginFrame()
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 12, G: 14, B: 20, A: 255})

	g.timers.Start(telemetry.PurposeApplication, telemetry.TimelineRender)
	g.world.Step(telemetry.TimelineRender, 0)
	g.drawControls()
	g.timers.Stop(telemetry.PurposeApplication, telemetry.TimelineRender)

	if g.showOverlay {
		g.stats.Draw(g.surface)
	}

	g.timers.Start(telemetry.PurposeVsync, telemetry.TimelineRender)
	rl.EndDrawing()
	g.timers.Stop(telemetry.PurposeVsync, telemetry.TimelineRender)

	g.timers.Stop(telemetry.PurposeEngine, telemetry.TimelineRender)
	g.endFrame()
}

// UpdateHeadless advances one frame of simulated time without rendering.
func (g *Game) UpdateHeadless() {
	g.Update(1 / float32(g.cfg.Screen.TargetFPS))
	g.endFrame()
}

func (g *Game) endFrame() {
	g.frame++
	if g.opts.StatsEvery <= 0 || g.frame%g.opts.StatsEvery != 0 {
		return
	}
	if g.opts.Headless || g.opts.LogStats {
		g.logStats()
	}
	if err := g.output.WriteFrame(g.frame, g.timers, g.attachedWorld()); err != nil {
		slog.Error("writing frame stats", "error", err)
	}
}

// attachedWorld returns the world the overlay reads, or nil.
func (g *Game) attachedWorld() telemetry.WorkloadSource {
	if !g.worldAttached || g.world.Closed() {
		return nil
	}
	return g.world
}

// Run drives the graphical loop until the window closes or maxFrames is reached.
func (g *Game) Run(maxFrames int) {
	last := time.Now()
	for !rl.WindowShouldClose() {
		now := time.Now()
		g.Update(float32(now.Sub(last).Seconds()))
		last = now
		g.Draw()

		if maxFrames > 0 && g.frame >= maxFrames {
			break
		}
	}
}

// Unload writes a final replayable snapshot and releases the world and
// rendering resources.
func (g *Game) Unload() {
	if g.output != nil {
		path, err := g.output.WriteSamples(g.frame, telemetry.Capture(g.timers, g.attachedWorld()))
		if err != nil {
			slog.Error("writing samples", "error", err)
		} else {
			slog.Info("samples written", "path", path)
		}
		if err := g.output.Close(); err != nil {
			slog.Error("closing output", "error", err)
		}
		g.output = nil
	}
	g.world.Close()
	if g.surface != nil {
		g.surface.Unload()
	}
}
