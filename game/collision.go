package game

import (
	"github.com/plus3/nihilchroma/ecs"
	"github.com/plus3/nihilchroma/geom"
)

// OffStage is where struck balls are parked. It lies outside every respawn
// ring, so Respawn recycles the ball on a later frame. Orbiting entities are
// repositioned by Orbit in the same frame and never rest there.
var OffStage = geom.V(-1e6, -1e6)

// CollisionSystem tests the player against every classified ball and turns
// overlaps into hit flags and score.
type CollisionSystem struct {
	Player ecs.Entity

	Players ecs.Query[struct {
		*Transform
		*BoundingCircle
	}]
	Balls ecs.Query[struct {
		Entity ecs.Entity
		*Transform
		*BoundingCircle
		*BallClass
	}]
	Hits  ecs.Singleton[HitFlags]
	Score ecs.Singleton[ScoreDelta]
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	hits := s.Hits.MustGet()
	*hits = HitFlags{}

	player := s.Players.Get(s.Player)
	if player == nil {
		panic("collision: player entity has no Transform and BoundingCircle")
	}
	playerPos := player.Transform.Position
	playerRadius := player.BoundingCircle.Radius

	score := s.Score.MustGet()
	for ball := range s.Balls.Values() {
		if ball.Entity == s.Player {
			continue
		}
		if !geom.CirclesOverlap(playerPos, playerRadius, ball.Transform.Position, ball.BoundingCircle.Radius) {
			continue
		}

		ball.Transform.Position = OffStage

		switch *ball.BallClass {
		case Beneficial:
			*score++
			hits.Beneficial = true
		case Neutral:
			hits.Neutral = true
		case Harmful:
			hits.Harmful = true
		}
	}
}
