package game_test

import (
	"math"
	"testing"
	"time"

	"github.com/plus3/nihilchroma/game"
	"github.com/plus3/nihilchroma/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ballRespawn = game.RespawnParams{MaxRadius: 360, MinSpeed: 60, MaxSpeed: 140}

func TestBallSpawnerTimeGate(t *testing.T) {
	w := newTestWorld(t)
	start := time.Unix(1000, 0)
	spawner := game.NewBallSpawner(w, newRand(1), &game.Palette{}, time.Second, 10, ballRespawn, start)

	_, ok := spawner.Tick(start.Add(500 * time.Millisecond))
	assert.False(t, ok)

	_, ok = spawner.Tick(start.Add(time.Second))
	assert.False(t, ok, "the gate is strictly greater than the interval")

	_, ok = spawner.Tick(start.Add(1001 * time.Millisecond))
	assert.True(t, ok)

	// Many frames inside the next interval spawn nothing
	for i := 1; i <= 100; i++ {
		_, ok = spawner.Tick(start.Add(1001*time.Millisecond + time.Duration(i)*9*time.Millisecond))
		assert.False(t, ok)
	}

	// A long stall still yields a single ball
	_, ok = spawner.Tick(start.Add(time.Minute))
	assert.True(t, ok)
	assert.Equal(t, 2, w.Respawns.Len())
}

func TestBallSpawnerBundle(t *testing.T) {
	w := newTestWorld(t)
	palette := &game.Palette{Balls: []game.BallVariant{{Class: game.Harmful, Handle: 7}}}
	spawner := game.NewBallSpawner(w, newRand(1), palette, time.Second, 10, ballRespawn, time.Time{})

	e := spawner.Spawn()

	require.NotNil(t, w.Transforms.Get(e))
	assert.Equal(t, game.Velocity{}, *w.Velocities.Get(e))
	assert.Equal(t, game.Sprite{Handle: 7}, *w.Sprites.Get(e))
	assert.Equal(t, ballRespawn, *w.Respawns.Get(e))
	assert.Equal(t, game.BoundingCircle{Radius: 10}, *w.Bounds.Get(e))
	assert.Equal(t, game.Harmful, *w.Classes.Get(e))

	// Starts just outside the ring so the next respawn pass places it
	dist := w.Transforms.Get(e).Position.Sub(testArena.Center()).Len()
	assert.Greater(t, dist, ballRespawn.MaxRadius)

	runSystem(w, &game.RespawnSystem{Rand: newRand(9)}, 0.016)
	dist = w.Transforms.Get(e).Position.Sub(testArena.Center()).Len()
	assert.InDelta(t, ballRespawn.MaxRadius, dist, 1e-2)
}

func TestBallSpawnerEmptyPalette(t *testing.T) {
	w := newTestWorld(t)
	palette := &game.Palette{
		ClassDefaults: map[game.BallClass]game.VisualHandle{
			game.Beneficial: 11,
			game.Neutral:    12,
			game.Harmful:    13,
		},
	}
	spawner := game.NewBallSpawner(w, newRand(4), palette, time.Second, 10, ballRespawn, time.Time{})

	seen := map[game.BallClass]bool{}
	for range 100 {
		e := spawner.Spawn()
		class := *w.Classes.Get(e)
		seen[class] = true
		assert.Equal(t, palette.ClassDefaults[class], w.Sprites.Get(e).Handle)
	}
	assert.Len(t, seen, 3)
}

func TestPaletteFallbacks(t *testing.T) {
	rng := newRand(8)
	palette := &game.Palette{Fallback: 99}

	assert.NotPanics(t, func() {
		assert.Equal(t, game.VisualHandle(99), palette.PickPopulation(rng))
		assert.Equal(t, game.VisualHandle(99), palette.PickBall(rng).Handle)
	})

	palette.Population = []game.VisualHandle{4, 5}
	for range 20 {
		assert.Contains(t, []game.VisualHandle{4, 5}, palette.PickPopulation(rng))
	}
}

func TestPopulationSpawnerAimsInward(t *testing.T) {
	w := newTestWorld(t)
	spawner := &game.PopulationSpawner{
		World:   w,
		Rand:    newRand(12),
		Palette: &game.Palette{Population: []game.VisualHandle{3}},
		Speed:   120,
		Spread:  game.DefaultSpread,
	}

	for range 200 {
		e := spawner.Spawn()
		pos := w.Transforms.Get(e).Position
		vel := geom.Vec2(*w.Velocities.Get(e))

		assert.True(t, testArena.OnPerimeter(pos, 1e-3), "pos %v", pos)
		assert.InDelta(t, 120, vel.Len(), 1e-3)

		toCenter := testArena.Center().Sub(pos).Normalize()
		cos := float64(vel.Normalize().Dot(toCenter))
		assert.GreaterOrEqual(t, cos, math.Cos(game.DefaultSpread)-1e-4)
		assert.Equal(t, game.VisualHandle(3), w.Sprites.Get(e).Handle)
	}
}

func TestPopulationSpawnerEdgeWeighting(t *testing.T) {
	w := game.NewWorld(geom.RectWH(300, 100))
	spawner := &game.PopulationSpawner{World: w, Rand: newRand(21), Palette: &game.Palette{}, Speed: 1}

	horizontal := 0
	const n = 4000
	for range n {
		pos := w.Transforms.Get(spawner.Spawn()).Position
		if pos.Y == 0 || pos.Y == 100 {
			horizontal++
		}
	}

	// Top and bottom edges make up 600 of the 800 units of perimeter
	assert.InDelta(t, 0.75, float64(horizontal)/n, 0.04)
}

func TestSpawnBoss(t *testing.T) {
	w := newTestWorld(t)
	boss := game.SpawnBoss(w, game.BossSpec{
		Radius:          140,
		StartRadius:     1000,
		TargetRadius:    150,
		AngularVelocity: 0.02,
		Sprite:          5,
	})

	assert.Equal(t, game.Harmful, *w.Classes.Get(boss))
	assert.Equal(t, game.OrbitParams{Radius: 1000, TargetRadius: 150, AngularVelocity: 0.02}, *w.Orbits.Get(boss))
	assert.Equal(t, game.BoundingCircle{Radius: 140}, *w.Bounds.Get(boss))
	assert.Equal(t, game.Sprite{Handle: 5}, *w.Sprites.Get(boss))
	assert.False(t, w.Respawns.Has(boss))
	assert.InDelta(t, 1000, w.Transforms.Get(boss).Position.Sub(playerPos(w)).Len(), 1e-2)
}
