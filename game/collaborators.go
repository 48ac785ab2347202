package game

// VisualHandle identifies an image owned by the asset collaborator.
// The zero handle draws nothing.
type VisualHandle int32

const NoVisual VisualHandle = 0

// InputSource polls platform input once per frame.
type InputSource interface {
	Poll() FrameInput
}

// Visuals renders text into visual handles for the HUD.
type Visuals interface {
	// Text renders the formatted string into handle, allocating a new handle
	// when handle is NoVisual, and returns the handle to use.
	Text(handle VisualHandle, format string, args ...any) VisualHandle
}

// Cue is a sound event.
type Cue uint8

const (
	CueBeneficial Cue = iota
	CueNeutral
	CueHarmful
	CueBoss
	CueGameOver
)

func (c Cue) String() string {
	switch c {
	case CueBeneficial:
		return "beneficial"
	case CueNeutral:
		return "neutral"
	case CueHarmful:
		return "harmful"
	case CueBoss:
		return "boss"
	case CueGameOver:
		return "game-over"
	}
	return "unknown"
}

// SoundSink plays cues. Implementations must not block the frame.
type SoundSink interface {
	Play(cue Cue)
}

type nopInput struct{}

func (nopInput) Poll() FrameInput { return FrameInput{} }

type nopVisuals struct{}

func (nopVisuals) Text(handle VisualHandle, format string, args ...any) VisualHandle { return handle }

type nopSounds struct{}

func (nopSounds) Play(Cue) {}
