package game

import (
	"math/rand/v2"
)

// BallVariant is one entry of the ball palette.
type BallVariant struct {
	Class  BallClass
	Handle VisualHandle
}

// Palette holds the visuals spawners choose from. Any list may be empty.
type Palette struct {
	Balls      []BallVariant
	Population []VisualHandle

	// ClassDefaults is used for balls when Balls is empty.
	ClassDefaults map[BallClass]VisualHandle
	// Fallback is used when nothing more specific is available.
	Fallback VisualHandle
}

// PickBall chooses a ball variant uniformly. With an empty palette the class is
// chosen uniformly and drawn with its class default.
func (p *Palette) PickBall(rng *rand.Rand) BallVariant {
	if len(p.Balls) > 0 {
		return p.Balls[rng.IntN(len(p.Balls))]
	}

	class := ballClasses[rng.IntN(len(ballClasses))]
	handle, ok := p.ClassDefaults[class]
	if !ok {
		handle = p.Fallback
	}
	return BallVariant{Class: class, Handle: handle}
}

// PickPopulation chooses a drifter visual uniformly, or Fallback when there are none.
func (p *Palette) PickPopulation(rng *rand.Rand) VisualHandle {
	if len(p.Population) == 0 {
		return p.Fallback
	}
	return p.Population[rng.IntN(len(p.Population))]
}
