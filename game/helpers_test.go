package game_test

import (
	"math/rand/v2"
	"testing"

	"github.com/plus3/nihilchroma/ecs"
	"github.com/plus3/nihilchroma/game"
	"github.com/plus3/nihilchroma/geom"
)

var testArena = geom.RectWH(480, 360)

func newTestWorld(t *testing.T) *game.World {
	t.Helper()
	w := game.NewWorld(testArena)
	w.SpawnPlayer(game.PlayerSpec{Radius: 14, MaxSpeed: 240, Sprite: 1})
	return w
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// runSystem runs sys once, followed by the usual flush and maintain.
func runSystem(w *game.World, sys ecs.System, dt float64) {
	scheduler := ecs.NewScheduler(w.Storage)
	scheduler.Register(sys)
	scheduler.Once(dt)
}

func spawnBall(w *game.World, pos geom.Vec2, radius float32, class game.BallClass) ecs.Entity {
	e := w.Storage.Create()
	w.Transforms.Add(e, game.Transform{Position: pos, Scale: geom.V(1, 1)})
	w.Velocities.Add(e, game.Velocity{})
	w.Bounds.Add(e, game.BoundingCircle{Radius: radius})
	w.Classes.Add(e, class)
	return e
}

func playerPos(w *game.World) geom.Vec2 {
	return w.Transforms.Get(w.Player).Position
}
