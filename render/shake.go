package render

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/nihilchroma/game"
	"github.com/plus3/nihilchroma/geom"
)

// shakeFloor is the magnitude below which the shake stops.
const shakeFloor = 0.1

// Shake turns ScreenShake requests into a decaying random offset.
type Shake struct {
	Decay float32 // exponential decay rate per second

	rng       *rand.Rand
	magnitude float32
	offset    geom.Vec2
}

func NewShake(decay float32, rng *rand.Rand) *Shake {
	return &Shake{Decay: decay, rng: rng}
}

// Consume starts a shake if req asks for one and clears the request. A weaker
// request never cuts a stronger shake short.
func (s *Shake) Consume(req *game.ScreenShake) {
	if !req.Requested {
		return
	}
	s.magnitude = max(s.magnitude, req.Magnitude)
	*req = game.ScreenShake{}
}

// Update decays the shake by dt seconds and rolls a new offset.
func (s *Shake) Update(dt float64) {
	if s.magnitude <= 0 {
		s.offset = geom.Vec2{}
		return
	}

	s.offset = geom.V(
		(s.rng.Float32()*2-1)*s.magnitude,
		(s.rng.Float32()*2-1)*s.magnitude,
	)

	s.magnitude *= float32(math.Exp(-float64(s.Decay) * dt))
	if s.magnitude < shakeFloor {
		s.magnitude = 0
	}
}

// Offset is the displacement to apply to the arena image this frame.
func (s *Shake) Offset() geom.Vec2 {
	return s.offset
}

func (s *Shake) Magnitude() float32 {
	return s.magnitude
}
