package game

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/framestats/config"
	"github.com/pthm-cable/framestats/systems"
	"github.com/pthm-cable/framestats/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	cfg.Simulation.InitialEntities = 50
	cfg.Simulation.MaxEntities = 100
	return cfg
}

func newHeadless(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(testConfig(t), Options{Seed: 1, Headless: true})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(g.Unload)
	return g
}

func TestHeadless_TimesFixedAndVariable(t *testing.T) {
	g := newHeadless(t)

	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}

	if g.Frame() != 10 {
		t.Errorf("Frame() = %d, want 10", g.Frame())
	}
	if n := g.timers.Stopwatch(telemetry.PurposeEngine, telemetry.TimelineFixed).Count(); n != 10 {
		t.Errorf("engine/fixed samples = %d, want 10", n)
	}
	if n := g.timers.Stopwatch(telemetry.PurposeApplication, telemetry.TimelineVariable).Count(); n != 10 {
		t.Errorf("application/variable samples = %d, want 10", n)
	}
	if n := g.timers.Stopwatch(telemetry.PurposeEngine, telemetry.TimelineRender).Count(); n != 0 {
		t.Errorf("engine/render samples = %d, want 0 when headless", n)
	}
}

func TestHeadless_NoRenderSystems(t *testing.T) {
	g := newHeadless(t)
	if got := len(g.world.Systems(telemetry.TimelineRender)); got != 0 {
		t.Errorf("render systems = %d, want 0 when headless", got)
	}
	if got := len(g.world.Systems(telemetry.TimelineFixed)); got != 3 {
		t.Errorf("fixed systems = %d, want 3", got)
	}
	if got := len(g.world.Systems(telemetry.TimelineVariable)); got != 2 {
		t.Errorf("variable systems = %d, want 2", got)
	}
}

func TestUpdateFixed_CapsCatchUp(t *testing.T) {
	g := newHeadless(t)
	g.cfg.Simulation.MaxFixedSteps = 2

	// Ten fixed steps of backlog, only two allowed
	g.updateFixed(g.cfg.Derived.FixedDT32 * 10)

	if g.accumulator != 0 {
		t.Errorf("accumulator = %v, want backlog dropped", g.accumulator)
	}
}

func TestRebuildWorld_ClosesOld(t *testing.T) {
	g := newHeadless(t)
	old := g.world

	if err := g.rebuildWorld(); err != nil {
		t.Fatalf("rebuildWorld: %v", err)
	}

	if !old.Closed() {
		t.Error("old world should be closed after rebuild")
	}
	if g.world == old {
		t.Error("world was not replaced")
	}
	if g.stats.World() == nil {
		t.Error("new world should be attached")
	}
}

func TestSetWorldAttached(t *testing.T) {
	g := newHeadless(t)

	g.setWorldAttached(false)
	if g.stats.World() != nil {
		t.Error("world should be detached")
	}

	// Rebuilding while detached must not attach
	if err := g.rebuildWorld(); err != nil {
		t.Fatalf("rebuildWorld: %v", err)
	}
	if g.stats.World() != nil {
		t.Error("rebuild attached a detached world")
	}

	g.setWorldAttached(true)
	if g.stats.World() == nil {
		t.Error("world should be attached")
	}
}

func TestToggleText(t *testing.T) {
	if got := toggleText(true, "on", "off"); got != "on" {
		t.Errorf("toggleText(true) = %q", got)
	}
	if got := toggleText(false, "on", "off"); got != "off" {
		t.Errorf("toggleText(false) = %q", got)
	}
}

func TestOutput_FramesAndSamples(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGame(testConfig(t), Options{Seed: 1, Headless: true, StatsEvery: 5, OutputDir: dir})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}
	g.Unload()

	if _, err := os.Stat(filepath.Join(dir, "frames.csv")); err != nil {
		t.Errorf("frames.csv: %v", err)
	}

	timers, world, err := telemetry.LoadSamples(filepath.Join(dir, "samples_000010.csv"))
	if err != nil {
		t.Fatalf("LoadSamples: %v", err)
	}
	if timers.AverageTime(telemetry.PurposeEngine, telemetry.TimelineFixed, telemetry.AveragingAverage) <= 0 {
		t.Error("fixed engine time should be recorded")
	}
	if world == nil {
		t.Fatal("attached world should be captured")
	}
	if got := len(world.Systems(telemetry.TimelineFixed)); got != 3 {
		t.Errorf("fixed systems = %d, want 3", got)
	}
}

func TestAging_RemovesExpiredEntities(t *testing.T) {
	cfg := testConfig(t)
	cfg.Simulation.Lifetime = 1
	cfg.Simulation.SpawnPerSecond = 0

	world, err := newWorkload(cfg, rand.New(rand.NewSource(1)), systems.NewRegistry(), nil)
	if err != nil {
		t.Fatalf("newWorkload: %v", err)
	}
	if got := world.NumEntities(); got != 50 {
		t.Fatalf("NumEntities() = %d, want 50", got)
	}

	// Lifetimes are at most 1.5s
	world.Step(telemetry.TimelineFixed, 2)

	if got := world.NumEntities(); got != 0 {
		t.Errorf("NumEntities() = %d after every lifetime expired, want 0", got)
	}
	if got := world.Systems(telemetry.TimelineFixed)[2].Entities; got != 50 {
		t.Errorf("aging processed %d entities, want 50", got)
	}
}

func TestSpawner_RefillsAfterExpiry(t *testing.T) {
	cfg := testConfig(t)
	cfg.Simulation.Lifetime = 1
	cfg.Simulation.SpawnPerSecond = 1000

	world, err := newWorkload(cfg, rand.New(rand.NewSource(1)), systems.NewRegistry(), nil)
	if err != nil {
		t.Fatalf("newWorkload: %v", err)
	}

	world.Step(telemetry.TimelineFixed, 2)
	if got := world.NumEntities(); got != 0 {
		t.Fatalf("NumEntities() = %d, want 0", got)
	}

	// One second at 1000/s is capped by MaxEntities
	world.Step(telemetry.TimelineVariable, 1)
	if got := world.NumEntities(); got != cfg.Simulation.MaxEntities {
		t.Errorf("NumEntities() = %d after refill, want %d", got, cfg.Simulation.MaxEntities)
	}
}

func TestLogStats_WritesToSlog(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	g := newHeadless(t)
	g.UpdateHeadless()
	g.logStats()

	var entry map[string]any
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if err := json.Unmarshal(lines[len(lines)-1], &entry); err != nil {
		t.Fatalf("last log line is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "frame stats" {
		t.Errorf("msg = %v, want frame stats", entry["msg"])
	}
	if _, ok := entry["report"].(map[string]any); !ok {
		t.Errorf("report should be a structured group, got %T", entry["report"])
	}
}
