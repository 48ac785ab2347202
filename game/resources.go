package game

import (
	"github.com/plus3/nihilchroma/geom"
)

// HitFlags are one-frame pulses written by the collision system.
type HitFlags struct {
	Harmful    bool
	Neutral    bool
	Beneficial bool
}

// Any reports whether anything was hit this frame.
func (h HitFlags) Any() bool {
	return h.Harmful || h.Neutral || h.Beneficial
}

// ScoreDelta accumulates points scored this frame. The session consumes and zeroes it.
type ScoreDelta int

// ScreenShake is a request for the renderer to shake the final image.
type ScreenShake struct {
	Magnitude float32
	Requested bool
}

// PopulationLow is set when fewer drifters than the threshold are alive.
type PopulationLow bool

// Arena is the visible play area.
type Arena struct {
	Bounds geom.Rect
}

// KeyEvent is a press or release edge of a direction key.
type KeyEvent struct {
	Key     Key
	Pressed bool
}

// FrameInput is everything the input collaborator polled this frame.
type FrameInput struct {
	Events        []KeyEvent
	Pointer       geom.Vec2
	ExitRequested bool
}
