// Package systems schedules per-timeline units of work over an ECS world
// and reports how long each of them takes.
package systems

import (
	"fmt"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/framestats/telemetry"
)

// System is a unit of work scheduled on a timeline.
// Update returns the number of entities it processed.
type System interface {
	Update(w *ecs.World, dt float32) int
}

// SystemFunc adapts a function to the System interface.
type SystemFunc func(w *ecs.World, dt float32) int

// Update calls f.
func (f SystemFunc) Update(w *ecs.World, dt float32) int {
	return f(w, dt)
}

type scheduled struct {
	id       string
	system   System
	watch    *telemetry.Stopwatch
	entities int
}

// World owns an ECS world and the systems scheduled on each timeline.
// It is not safe for concurrent use.
type World struct {
	ecs      *ecs.World
	registry *Registry
	window   int

	schedule [telemetry.NumTimelines][]*scheduled
	totals   [telemetry.NumTimelines]*telemetry.Stopwatch
	closed   bool
}

// NewWorld creates a world whose stopwatches average over window samples.
// registry may be nil, in which case system IDs are displayed as-is.
func NewWorld(window int, registry *Registry) *World {
	w := &World{
		ecs:      ecs.NewWorld(),
		registry: registry,
		window:   window,
	}
	for i := range w.totals {
		w.totals[i] = telemetry.NewStopwatch(window)
	}
	return w
}

// ECS returns the underlying entity store.
func (w *World) ECS() *ecs.World {
	return w.ecs
}

// Registry returns the system metadata registry, possibly nil.
func (w *World) Registry() *Registry {
	return w.registry
}

// Add schedules sys on tl after any systems already scheduled there.
func (w *World) Add(tl telemetry.Timeline, id string, sys System) error {
	if !tl.Valid() {
		return fmt.Errorf("scheduling %q: unknown timeline %v", id, tl)
	}
	for _, s := range w.schedule[tl] {
		if s.id == id {
			return fmt.Errorf("scheduling %q: already scheduled on %v", id, tl)
		}
	}
	w.schedule[tl] = append(w.schedule[tl], &scheduled{
		id:     id,
		system: sys,
		watch:  telemetry.NewStopwatch(w.window),
	})
	return nil
}

// Step runs every system scheduled on tl in order, timing each of them.
// A closed world does nothing.
func (w *World) Step(tl telemetry.Timeline, dt float32) {
	if w.Closed() || !tl.Valid() {
		return
	}
	stepStart := time.Now()
	for _, s := range w.schedule[tl] {
		start := time.Now()
		s.entities = s.system.Update(w.ecs, dt)
		s.watch.Record(time.Since(start))
	}
	w.totals[tl].Record(time.Since(stepStart))
}

// AverageTime returns the running mean time spent stepping tl, in nanoseconds.
func (w *World) AverageTime(tl telemetry.Timeline) int64 {
	if !tl.Valid() {
		return 0
	}
	return w.totals[tl].Elapsed(telemetry.AveragingAverage)
}

// Systems reports the systems scheduled on tl in scheduling order.
// The slice is freshly allocated on every call.
func (w *World) Systems(tl telemetry.Timeline) []telemetry.SystemStat {
	if !tl.Valid() {
		return nil
	}
	stats := make([]telemetry.SystemStat, 0, len(w.schedule[tl]))
	for _, s := range w.schedule[tl] {
		stats = append(stats, telemetry.SystemStat{
			Name:     w.registry.GetName(s.id),
			Entities: s.entities,
			Nanos:    s.watch.Elapsed(telemetry.AveragingAverage),
		})
	}
	return stats
}

// NumEntities returns the number of live entities.
func (w *World) NumEntities() int {
	return w.ecs.Stats().Entities.Used
}

// Close invalidates the world. Readers holding a reference must drop it.
func (w *World) Close() {
	if w != nil {
		w.closed = true
	}
}

// Closed reports whether the world is nil or has been closed.
func (w *World) Closed() bool {
	return w == nil || w.closed
}
