package main

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/plus3/nihilchroma/game"
	"github.com/plus3/nihilchroma/geom"
)

// pilot steers the player without a window: it holds a random set of
// direction keys for a random number of frames and sweeps the aim point
// around the arena centre.
type pilot struct {
	rng     *rand.Rand
	centre  geom.Vec2
	radius  float32
	held    map[game.Key]bool
	hold    int
	angle   float64
	turning float64
}

var pilotKeys = [...]game.Key{game.KeyUp, game.KeyDown, game.KeyLeft, game.KeyRight}

func newPilot(rng *rand.Rand, arena geom.Rect, upscale float32) *pilot {
	return &pilot{
		rng:     rng,
		centre:  arena.Center().Scale(upscale),
		radius:  min(arena.Width(), arena.Height()) * upscale / 3,
		held:    make(map[game.Key]bool),
		turning: 0.05,
	}
}

func (p *pilot) Poll() game.FrameInput {
	var in game.FrameInput

	if p.hold <= 0 {
		p.hold = 15 + p.rng.IntN(60)
		for _, k := range pilotKeys {
			want := p.rng.IntN(3) == 0
			if want != p.held[k] {
				p.held[k] = want
				in.Events = append(in.Events, game.KeyEvent{Key: k, Pressed: want})
			}
		}
		if p.rng.IntN(4) == 0 {
			p.turning = -p.turning
		}
	}
	p.hold--

	p.angle = math.Mod(p.angle+p.turning, 2*math.Pi)
	in.Pointer = p.centre.Add(geom.FromAngle(p.angle, p.radius))
	return in
}

// simClock advances only when the harness says so, so that the ball spawner
// follows simulated time rather than wall time.
type simClock struct {
	now time.Time
}

func (c *simClock) Now() time.Time {
	return c.now
}

func (c *simClock) Advance(dt float64) {
	c.now = c.now.Add(time.Duration(dt * float64(time.Second)))
}
