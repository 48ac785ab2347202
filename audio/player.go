package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/plus3/nihilchroma/config"
	"github.com/plus3/nihilchroma/game"
)

const SampleRate = beep.SampleRate(48000)

// Player plays cues on the system speaker. Play never blocks the frame: the
// cue is handed to the speaker's mixer and synthesised on its goroutine.
type Player struct {
	volume float64
	log    *zap.Logger
}

// NewPlayer opens the speaker.
func NewPlayer(cfg config.AudioConfig, log *zap.Logger) (*Player, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	return &Player{volume: cfg.Volume, log: log}, nil
}

func (p *Player) Play(cue game.Cue) {
	s := CueStream(cue, SampleRate, p.volume)
	if s == nil {
		p.log.Warn("unknown sound cue", zap.Stringer("cue", cue))
		return
	}
	speaker.Play(s)
}

// Close stops every playing cue and releases the speaker.
func (p *Player) Close() {
	speaker.Clear()
	speaker.Close()
}

// Nop is the silent sound sink.
type Nop struct{}

func (Nop) Play(game.Cue) {}

func (Nop) Close() {}

// Sink is a sound sink that must be closed on shutdown.
type Sink interface {
	game.SoundSink
	Close()
}

// New returns a speaker-backed sink, or Nop when audio is disabled or the
// speaker cannot be opened.
func New(cfg config.AudioConfig, log *zap.Logger) Sink {
	if !cfg.Enabled {
		log.Info("audio disabled")
		return Nop{}
	}
	p, err := NewPlayer(cfg, log)
	if err != nil {
		log.Warn("audio unavailable, continuing silently", zap.Error(err))
		return Nop{}
	}
	return p
}
