package game

import (
	"math"

	"github.com/plus3/nihilchroma/ecs"
	"github.com/plus3/nihilchroma/geom"
)

// OrbitEase is the fraction of the remaining distance to the target radius
// closed every frame.
const OrbitEase = 0.005

// OrbitSystem spirals entities in toward their target radius around the player.
type OrbitSystem struct {
	Player ecs.Entity

	Players ecs.Query[struct {
		*Transform
	}]
	Orbiters ecs.Query[struct {
		*Transform
		*OrbitParams
	}]
}

func (s *OrbitSystem) Execute(frame *ecs.UpdateFrame) {
	player := s.Players.Get(s.Player)
	if player == nil {
		panic("orbit: player entity has no Transform")
	}
	center := player.Transform.Position

	for o := range s.Orbiters.Values() {
		StepOrbit(o.OrbitParams)
		o.Transform.Position = center.Add(geom.FromAngle(o.OrbitParams.Angle, float32(o.OrbitParams.Radius)))
		o.Transform.Angle = o.OrbitParams.Angle + math.Pi/2
	}
}

// StepOrbit advances one frame of orbit: the angle by the angular velocity and
// the radius a fixed fraction of the way toward the target.
func StepOrbit(p *OrbitParams) {
	p.Angle += p.AngularVelocity
	p.Radius -= (p.Radius - p.TargetRadius) * OrbitEase
}
