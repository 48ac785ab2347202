package game

import (
	"github.com/plus3/nihilchroma/ecs"
	"github.com/plus3/nihilchroma/geom"
)

// MotionSystem integrates velocity into position, scaled by frame time.
type MotionSystem struct {
	Bodies ecs.Query[struct {
		*Transform
		*Velocity
	}]
}

func (s *MotionSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for body := range s.Bodies.Values() {
		body.Transform.Position = body.Transform.Position.Add(geom.Vec2(*body.Velocity).Scale(dt))
	}
}
