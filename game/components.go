package game

import (
	"github.com/plus3/nihilchroma/geom"
)

// Transform places an entity in the arena.
type Transform struct {
	Position geom.Vec2
	Scale    geom.Vec2
	Angle    float64
}

// Velocity is in arena units per second.
type Velocity geom.Vec2

// MaxVelocity caps the magnitude of an entity's Velocity.
type MaxVelocity float32

// Sprite is the visual drawn at an entity's Transform.
type Sprite struct {
	Handle VisualHandle
}

type BoundingCircle struct {
	Radius float32
}

// Key is a logical movement direction.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	}
	return "unknown"
}

// Direction returns the unit vector a key accelerates the player along.
// Screen space: y grows downward.
func (k Key) Direction() geom.Vec2 {
	switch k {
	case KeyUp:
		return geom.V(0, -1)
	case KeyDown:
		return geom.V(0, 1)
	case KeyLeft:
		return geom.V(-1, 0)
	case KeyRight:
		return geom.V(1, 0)
	}
	return geom.Vec2{}
}

var directionKeys = [...]Key{KeyUp, KeyDown, KeyLeft, KeyRight}

// PlayerInput is the set of currently held direction keys.
type PlayerInput struct {
	Pressed map[Key]bool
}

// PopulationTag marks decorative drifters.
type PopulationTag struct{}

// RespawnParams describe the ring an entity is recycled onto once it leaves it.
type RespawnParams struct {
	MaxRadius float32
	MinSpeed  float32
	MaxSpeed  float32
}

// BallClass decides what touching a ball does.
type BallClass uint8

const (
	Beneficial BallClass = iota
	Neutral
	Harmful
)

var ballClasses = [...]BallClass{Beneficial, Neutral, Harmful}

func (c BallClass) String() string {
	switch c {
	case Beneficial:
		return "beneficial"
	case Neutral:
		return "neutral"
	case Harmful:
		return "harmful"
	}
	return "unknown"
}

// OrbitParams drive an entity around the player on a shrinking circle.
type OrbitParams struct {
	Radius          float64
	TargetRadius    float64
	AngularVelocity float64
	Angle           float64
}

// ScoreLabel marks the HUD entity.
type ScoreLabel struct{}
