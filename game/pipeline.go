package game

import (
	"math/rand/v2"

	"github.com/plus3/nihilchroma/ecs"
)

// PipelineSettings carry the per-system tuning.
type PipelineSettings struct {
	PopulationThreshold int
	PopulationMargin    float32
	Acceleration        float32
	Upscale             float32
}

// NewPipeline registers the frame's systems in their fixed order:
// population, motion, population, input, collision, orbit, max-velocity,
// respawn. Scheduler.Once then flushes commands and maintains the storage,
// so nothing deleted this frame reaches the renderer.
func NewPipeline(w *World, settings PipelineSettings, rng *rand.Rand) *ecs.Scheduler {
	scheduler := ecs.NewScheduler(w.Storage)

	population := func() ecs.System {
		return &PopulationSystem{
			Threshold: settings.PopulationThreshold,
			Margin:    settings.PopulationMargin,
		}
	}

	scheduler.Register(population())
	scheduler.Register(&MotionSystem{})
	scheduler.Register(population())
	scheduler.Register(&InputSystem{
		Player:       w.Player,
		Acceleration: settings.Acceleration,
		Upscale:      settings.Upscale,
	})
	scheduler.Register(&CollisionSystem{Player: w.Player})
	scheduler.Register(&OrbitSystem{Player: w.Player})
	scheduler.Register(&MaxVelocitySystem{})
	scheduler.Register(&RespawnSystem{Rand: rng})

	return scheduler
}
