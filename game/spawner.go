package game

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/plus3/nihilchroma/ecs"
	"github.com/plus3/nihilchroma/geom"
)

// BallSpawner adds one ball per interval of wall-clock time.
type BallSpawner struct {
	World    *World
	Rand     *rand.Rand
	Palette  *Palette
	Interval time.Duration
	Radius   float32
	Respawn  RespawnParams

	last time.Time
}

// NewBallSpawner creates a spawner whose first ball is due one interval after start.
func NewBallSpawner(w *World, rng *rand.Rand, palette *Palette, interval time.Duration, radius float32, respawn RespawnParams, start time.Time) *BallSpawner {
	return &BallSpawner{
		World:    w,
		Rand:     rng,
		Palette:  palette,
		Interval: interval,
		Radius:   radius,
		Respawn:  respawn,
		last:     start,
	}
}

// Tick spawns a ball if more than Interval passed since the last one.
// At most one ball is spawned per call, however late the call is.
func (s *BallSpawner) Tick(now time.Time) (ecs.Entity, bool) {
	if now.Sub(s.last) <= s.Interval {
		return 0, false
	}
	s.last = now
	return s.Spawn(), true
}

// Spawn creates one ball just outside the respawn ring, so the next Respawn
// pass places it on the ring with a fresh velocity.
func (s *BallSpawner) Spawn() ecs.Entity {
	w := s.World
	variant := s.Palette.PickBall(s.Rand)
	center := w.Arena().Bounds.Center()

	e := w.Storage.Create()
	w.Transforms.Add(e, Transform{
		Position: center.Add(geom.V(s.Respawn.MaxRadius+1, 0)),
		Scale:    geom.V(1, 1),
	})
	w.Velocities.Add(e, Velocity{})
	w.Sprites.Add(e, Sprite{Handle: variant.Handle})
	w.Respawns.Add(e, s.Respawn)
	w.Bounds.Add(e, BoundingCircle{Radius: s.Radius})
	w.Classes.Add(e, variant.Class)
	return e
}

// PopulationSpawner adds drifters on the arena edge heading roughly inward.
type PopulationSpawner struct {
	World   *World
	Rand    *rand.Rand
	Palette *Palette
	Speed   float32
	// Spread is the largest deviation from dead-centre aim, in radians.
	Spread float64
}

// DefaultSpread aims drifters within a quarter turn of the arena centre.
const DefaultSpread = math.Pi / 4

// Spawn creates one drifter at a uniformly chosen point of the arena perimeter.
func (s *PopulationSpawner) Spawn() ecs.Entity {
	w := s.World
	bounds := w.Arena().Bounds

	pos := bounds.PointOnPerimeter(s.Rand.Float32() * bounds.Perimeter())
	jitter := (s.Rand.Float64()*2 - 1) * s.Spread
	heading := bounds.Center().Sub(pos).Normalize().Rotate(jitter)

	e := w.Storage.Create()
	w.Transforms.Add(e, Transform{Position: pos, Scale: geom.V(1, 1), Angle: heading.Angle()})
	w.Velocities.Add(e, Velocity(heading.Scale(s.Speed)))
	w.Sprites.Add(e, Sprite{Handle: s.Palette.PickPopulation(s.Rand)})
	w.Population.Add(e, PopulationTag{})
	return e
}

// BossSpec configures the orbiting hazard.
type BossSpec struct {
	Radius          float32
	StartRadius     float64
	TargetRadius    float64
	AngularVelocity float64
	Sprite          VisualHandle
}

// SpawnBoss creates a harmful entity that spirals in on the player.
func SpawnBoss(w *World, spec BossSpec) ecs.Entity {
	orbit := OrbitParams{
		Radius:          spec.StartRadius,
		TargetRadius:    spec.TargetRadius,
		AngularVelocity: spec.AngularVelocity,
	}

	var center geom.Vec2
	if t := w.Transforms.Get(w.Player); t != nil {
		center = t.Position
	}

	e := w.Storage.Create()
	w.Transforms.Add(e, Transform{
		Position: center.Add(geom.FromAngle(orbit.Angle, float32(orbit.Radius))),
		Scale:    geom.V(1, 1),
		Angle:    orbit.Angle + math.Pi/2,
	})
	w.Sprites.Add(e, Sprite{Handle: spec.Sprite})
	w.Bounds.Add(e, BoundingCircle{Radius: spec.Radius})
	w.Classes.Add(e, Harmful)
	w.Orbits.Add(e, orbit)
	return e
}
