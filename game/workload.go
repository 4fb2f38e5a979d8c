package game

import (
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/framestats/components"
	"github.com/pthm-cable/framestats/config"
	"github.com/pthm-cable/framestats/renderer"
	"github.com/pthm-cable/framestats/systems"
	"github.com/pthm-cable/framestats/telemetry"
)

// System IDs, in scheduling order per timeline.
const (
	SysMovement = "movement"
	SysBounds   = "bounds"
	SysAging    = "aging"
	SysSpawner  = "spawner"
	SysSteering = "steering"
	SysSprites  = "sprites"
)

// registerSystems describes the demo systems for display.
func registerSystems(r *systems.Registry) {
	r.Register(systems.SystemInfo{ID: SysMovement, Name: "Movement", Description: "Integrates velocity", Timeline: telemetry.TimelineFixed})
	r.Register(systems.SystemInfo{ID: SysBounds, Name: "Bounds", Description: "Bounces entities off the screen edges", Timeline: telemetry.TimelineFixed})
	r.Register(systems.SystemInfo{ID: SysAging, Name: "Aging", Description: "Expires entities at end of life", Timeline: telemetry.TimelineFixed})
	r.Register(systems.SystemInfo{ID: SysSpawner, Name: "Spawner", Description: "Tops the population back up", Timeline: telemetry.TimelineVariable})
	r.Register(systems.SystemInfo{ID: SysSteering, Name: "Steering", Description: "Random heading jitter", Timeline: telemetry.TimelineVariable})
	r.Register(systems.SystemInfo{ID: SysSprites, Name: "Sprites", Description: "Draws entities", Timeline: telemetry.TimelineRender})
}

type scheduledSystem struct {
	tl  telemetry.Timeline
	id  string
	sys systems.SystemFunc
}

// workload is the demo scene: bouncing, steering, expiring sprites.
type workload struct {
	cfg *config.Config
	rng *rand.Rand

	width, height float32
	spawnDebt     float32

	mapper       *ecs.Map4[components.Position, components.Velocity, components.Lifetime, components.Tint]
	motionFilter *ecs.Filter2[components.Position, components.Velocity]
	lifeFilter   *ecs.Filter1[components.Lifetime]
	spriteFilter *ecs.Filter3[components.Position, components.Lifetime, components.Tint]

	sprites        []renderer.Sprite
	spriteRenderer *renderer.SpriteRenderer // nil when headless
	toRemove       []ecs.Entity
}

// newWorkload builds a world with the demo systems scheduled and populated.
func newWorkload(cfg *config.Config, rng *rand.Rand, registry *systems.Registry, spriteRenderer *renderer.SpriteRenderer) (*systems.World, error) {
	world := systems.NewWorld(cfg.Timing.Window, registry)
	ew := world.ECS()

	w := &workload{
		cfg:            cfg,
		rng:            rng,
		width:          cfg.Derived.ScreenW32,
		height:         cfg.Derived.ScreenH32,
		mapper:         ecs.NewMap4[components.Position, components.Velocity, components.Lifetime, components.Tint](ew),
		motionFilter:   ecs.NewFilter2[components.Position, components.Velocity](ew),
		lifeFilter:     ecs.NewFilter1[components.Lifetime](ew),
		spriteFilter:   ecs.NewFilter3[components.Position, components.Lifetime, components.Tint](ew),
		spriteRenderer: spriteRenderer,
	}

	schedule := []scheduledSystem{
		{telemetry.TimelineFixed, SysMovement, w.move},
		{telemetry.TimelineFixed, SysBounds, w.bounce},
		{telemetry.TimelineFixed, SysAging, w.age},
		{telemetry.TimelineVariable, SysSpawner, w.spawn},
		{telemetry.TimelineVariable, SysSteering, w.steer},
	}
	if spriteRenderer != nil {
		schedule = append(schedule, scheduledSystem{telemetry.TimelineRender, SysSprites, w.draw})
	}
	for _, s := range schedule {
		if err := world.Add(s.tl, s.id, s.sys); err != nil {
			return nil, err
		}
	}

	for i := 0; i < cfg.Simulation.InitialEntities; i++ {
		w.spawnOne()
	}
	return world, nil
}

// spawnOne creates an entity at a random position with a random heading.
func (w *workload) spawnOne() ecs.Entity {
	heading := w.rng.Float64() * 2 * math.Pi
	speed := float32(w.cfg.Simulation.MaxSpeed) * (0.25 + 0.75*w.rng.Float32())
	life := float32(w.cfg.Simulation.Lifetime) * (0.5 + w.rng.Float32())

	pos := components.Position{X: w.rng.Float32() * w.width, Y: w.rng.Float32() * w.height}
	vel := components.Velocity{X: float32(math.Cos(heading)) * speed, Y: float32(math.Sin(heading)) * speed}
	lifetime := components.Lifetime{Remaining: life, Total: life}
	tint := components.Tint{
		R:      uint8(80 + w.rng.Intn(176)),
		G:      uint8(80 + w.rng.Intn(176)),
		B:      uint8(80 + w.rng.Intn(176)),
		Radius: 2 + 4*w.rng.Float32(),
	}
	return w.mapper.NewEntity(&pos, &vel, &lifetime, &tint)
}

// move integrates positions.
func (w *workload) move(_ *ecs.World, dt float32) int {
	n := 0
	query := w.motionFilter.Query()
	for query.Next() {
		pos, vel := query.Get()
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		n++
	}
	return n
}

// bounce reflects entities off the screen edges.
func (w *workload) bounce(_ *ecs.World, _ float32) int {
	n := 0
	query := w.motionFilter.Query()
	for query.Next() {
		pos, vel := query.Get()
		if pos.X < 0 {
			pos.X, vel.X = -pos.X, -vel.X
		} else if pos.X > w.width {
			pos.X, vel.X = 2*w.width-pos.X, -vel.X
		}
		if pos.Y < 0 {
			pos.Y, vel.Y = -pos.Y, -vel.Y
		} else if pos.Y > w.height {
			pos.Y, vel.Y = 2*w.height-pos.Y, -vel.Y
		}
		n++
	}
	return n
}

// age counts lifetimes down and removes expired entities.
func (w *workload) age(world *ecs.World, dt float32) int {
	n := 0
	w.toRemove = w.toRemove[:0]

	// First pass: collect expired entities (must complete before modifying)
	query := w.lifeFilter.Query()
	for query.Next() {
		life := query.Get()
		life.Remaining -= dt
		if life.Remaining <= 0 {
			w.toRemove = append(w.toRemove, query.Entity())
		}
		n++
	}

	// Second pass: remove entities (query iteration complete)
	for _, e := range w.toRemove {
		world.RemoveEntity(e)
	}
	return n
}

// spawn tops the population up at the configured rate.
// Its entity count is the number of entities created this step.
func (w *workload) spawn(world *ecs.World, dt float32) int {
	w.spawnDebt += float32(w.cfg.Simulation.SpawnPerSecond) * dt

	alive := world.Stats().Entities.Used
	spawned := 0
	for w.spawnDebt >= 1 && alive < w.cfg.Simulation.MaxEntities {
		w.spawnOne()
		w.spawnDebt--
		alive++
		spawned++
	}
	if alive >= w.cfg.Simulation.MaxEntities {
		w.spawnDebt = 0
	}
	return spawned
}

// steer jitters headings and clamps speed.
func (w *workload) steer(_ *ecs.World, dt float32) int {
	maxSpeed := float32(w.cfg.Simulation.MaxSpeed)
	n := 0
	query := w.motionFilter.Query()
	for query.Next() {
		_, vel := query.Get()
		vel.X += (w.rng.Float32()*2 - 1) * maxSpeed * dt
		vel.Y += (w.rng.Float32()*2 - 1) * maxSpeed * dt

		speed := float32(math.Sqrt(float64(vel.X*vel.X + vel.Y*vel.Y)))
		if speed > maxSpeed {
			scale := maxSpeed / speed
			vel.X *= scale
			vel.Y *= scale
		}
		n++
	}
	return n
}

// draw renders every entity as a fading circle.
func (w *workload) draw(_ *ecs.World, _ float32) int {
	w.sprites = w.sprites[:0]
	query := w.spriteFilter.Query()
	for query.Next() {
		pos, life, tint := query.Get()
		w.sprites = append(w.sprites, renderer.Sprite{
			X:      pos.X,
			Y:      pos.Y,
			Radius: tint.Radius,
			Tint:   rl.Color{R: tint.R, G: tint.G, B: tint.B, A: 220},
			Life:   life.Fraction(),
		})
	}
	w.spriteRenderer.Draw(w.sprites)
	return len(w.sprites)
}
