package game

import (
	"github.com/plus3/nihilchroma/ecs"
	"github.com/plus3/nihilchroma/geom"
)

// MaxVelocitySystem rescales any velocity longer than its cap down to the cap.
type MaxVelocitySystem struct {
	Bodies ecs.Query[struct {
		*Velocity
		*MaxVelocity
	}]
}

func (s *MaxVelocitySystem) Execute(frame *ecs.UpdateFrame) {
	for body := range s.Bodies.Values() {
		*body.Velocity = Velocity(geom.ClampLength(geom.Vec2(*body.Velocity), float32(*body.MaxVelocity)))
	}
}
