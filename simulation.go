package balls

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/zegevlier/bevy-balls/internal/prand"
)

// World owns every live ball. Balls are created by Spawn and removed only
// by Reset; collisions never delete them.
type World struct {
	config Config
	balls  []*Ball
	nextID uint64
	rng    *rand.Rand
}

// NewWorld builds an empty world from a normalized copy of cfg. An empty
// seed is replaced with a random one, so the effective seed can still be
// reported and a run replayed.
func NewWorld(cfg Config) *World {
	cfg = cfg.Normalized()
	if cfg.Seed == "" {
		cfg.Seed = uuid.NewString()
	}
	return &World{
		config: cfg,
		rng:    prand.New(cfg.Seed, "balls"),
	}
}

// Config returns the effective configuration, seed included.
func (w *World) Config() Config {
	return w.config
}

// Len reports the live ball count.
func (w *World) Len() int {
	return len(w.balls)
}

// Spawn creates one ball at the cage center with a random direction scaled
// to the starting speed and a random display color. Direction is sampled
// before color, so seeded streams stay stable.
func (w *World) Spawn() *Ball {
	w.nextID++
	direction := randomDirection(w.rng)
	ball := &Ball{
		ID:      fmt.Sprintf("ball-%d", w.nextID),
		Vel:     direction.Mul(w.config.StartingSpeed),
		Radius:  w.config.BallRadius,
		Gravity: w.config.Gravity,
		Color:   randomColor(w.rng),
	}
	w.balls = append(w.balls, ball)
	return ball
}

// Reset removes every ball. The ID counter keeps counting, so IDs stay
// unique across resets.
func (w *World) Reset() {
	w.balls = nil
}

// Snapshot copies the live balls in registry order.
func (w *World) Snapshot() []Ball {
	snapshot := make([]Ball, 0, len(w.balls))
	for _, ball := range w.balls {
		snapshot = append(snapshot, *ball)
	}
	return snapshot
}

// Step advances the simulation by one fixed timestep: gravity, then
// position, then cage collisions, then pair collisions, then the
// collision-driven effects. Stage order must not change.
func (w *World) Step(dt float64) StepEvents {
	w.applyGravity(dt)
	w.applyVelocity(dt)
	events := StepEvents{CageHits: w.collideCage()}
	events.BallHits = w.collideBalls()
	events.Spawned = w.rollSpawn(events.CageHits)
	events.Cues = deriveCues(events)
	return events
}
