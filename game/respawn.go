package game

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/nihilchroma/ecs"
	"github.com/plus3/nihilchroma/geom"
)

// RespawnSystem puts entities that left their ring back on it, heading in a
// random direction at a random speed.
type RespawnSystem struct {
	Rand *rand.Rand

	Bodies ecs.Query[struct {
		*Transform
		*Velocity
		*RespawnParams
	}]
	Arena ecs.Singleton[Arena]
}

func (s *RespawnSystem) Execute(frame *ecs.UpdateFrame) {
	center := s.Arena.MustGet().Bounds.Center()

	for body := range s.Bodies.Values() {
		params := body.RespawnParams
		if body.Transform.Position.DistSq(center) <= params.MaxRadius*params.MaxRadius {
			continue
		}

		at := s.Rand.Float64() * 2 * math.Pi
		body.Transform.Position = center.Add(geom.FromAngle(at, params.MaxRadius))

		heading := s.Rand.Float64() * 2 * math.Pi
		speed := params.MinSpeed + s.Rand.Float32()*(params.MaxSpeed-params.MinSpeed)
		*body.Velocity = Velocity(geom.FromAngle(heading, speed))
	}
}
