package game

import (
	"github.com/plus3/nihilchroma/ecs"
	"github.com/plus3/nihilchroma/geom"
)

// World is the fixed set of component stores the game runs on, plus the
// player reference every player-relative system holds.
type World struct {
	Storage *ecs.Storage

	Transforms    *ecs.Store[Transform]
	Velocities    *ecs.Store[Velocity]
	MaxVelocities *ecs.Store[MaxVelocity]
	Sprites       *ecs.Store[Sprite]
	Bounds        *ecs.Store[BoundingCircle]
	Inputs        *ecs.Store[PlayerInput]
	Population    *ecs.Store[PopulationTag]
	Respawns      *ecs.Store[RespawnParams]
	Classes       *ecs.Store[BallClass]
	Orbits        *ecs.Store[OrbitParams]
	Labels        *ecs.Store[ScoreLabel]

	Player ecs.Entity
}

// NewWorld registers every component store and the shared resources.
func NewWorld(arena geom.Rect) *World {
	s := ecs.NewStorage()
	w := &World{
		Storage:       s,
		Transforms:    ecs.AddStore[Transform](s),
		Velocities:    ecs.AddStore[Velocity](s),
		MaxVelocities: ecs.AddStore[MaxVelocity](s),
		Sprites:       ecs.AddStore[Sprite](s),
		Bounds:        ecs.AddStore[BoundingCircle](s),
		Inputs:        ecs.AddStore[PlayerInput](s),
		Population:    ecs.AddStore[PopulationTag](s),
		Respawns:      ecs.AddStore[RespawnParams](s),
		Classes:       ecs.AddStore[BallClass](s),
		Orbits:        ecs.AddStore[OrbitParams](s),
		Labels:        ecs.AddStore[ScoreLabel](s),
	}

	s.AddSingleton(HitFlags{})
	s.AddSingleton(ScoreDelta(0))
	s.AddSingleton(ScreenShake{})
	s.AddSingleton(PopulationLow(false))
	s.AddSingleton(Arena{Bounds: arena})
	s.AddSingleton(FrameInput{})

	return w
}

// PlayerSpec describes the avatar.
type PlayerSpec struct {
	Radius   float32
	MaxSpeed float32
	Sprite   VisualHandle
}

// SpawnPlayer creates the player at the arena centre and remembers it.
func (w *World) SpawnPlayer(spec PlayerSpec) ecs.Entity {
	e := w.Storage.Create()
	w.Transforms.Add(e, Transform{Position: w.Arena().Bounds.Center(), Scale: geom.V(1, 1)})
	w.Velocities.Add(e, Velocity{})
	w.MaxVelocities.Add(e, MaxVelocity(spec.MaxSpeed))
	w.Bounds.Add(e, BoundingCircle{Radius: spec.Radius})
	w.Inputs.Add(e, PlayerInput{Pressed: map[Key]bool{}})
	w.Sprites.Add(e, Sprite{Handle: spec.Sprite})
	w.Player = e
	return e
}

// SpawnScoreLabel creates the HUD entity in the top-left corner.
func (w *World) SpawnScoreLabel(handle VisualHandle) ecs.Entity {
	e := w.Storage.Create()
	w.Transforms.Add(e, Transform{Position: w.Arena().Bounds.Min.Add(geom.V(4, 4)), Scale: geom.V(1, 1)})
	w.Sprites.Add(e, Sprite{Handle: handle})
	w.Labels.Add(e, ScoreLabel{})
	return e
}

// Resource accessors. Every resource is registered by NewWorld, so these never return nil.

func (w *World) Arena() *Arena {
	return resource[Arena](w.Storage)
}

func (w *World) Hits() *HitFlags {
	return resource[HitFlags](w.Storage)
}

func (w *World) ScoreDelta() *ScoreDelta {
	return resource[ScoreDelta](w.Storage)
}

func (w *World) Shake() *ScreenShake {
	return resource[ScreenShake](w.Storage)
}

func (w *World) PopulationLow() *PopulationLow {
	return resource[PopulationLow](w.Storage)
}

func (w *World) Input() *FrameInput {
	return resource[FrameInput](w.Storage)
}

func resource[T any](s *ecs.Storage) *T {
	var out *T
	if !s.ReadSingleton(&out) {
		panic("game: resource not registered")
	}
	return out
}
