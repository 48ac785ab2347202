// Package audio synthesises short cues for game events with beep.
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/plus3/nihilchroma/game"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator generates a wave at freq for duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer: s,
		attack:   rate.N(attack),
		release:  rate.N(release),
		total:    rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; remaining < e.release {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// note is one shaped tone of a cue.
type note struct {
	freq     float64
	wave     WaveType
	duration time.Duration
}

func (n note) stream(rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(n.freq, n.duration, n.wave, rate)
	return NewEnvelope(osc, n.duration, 5*time.Millisecond, n.duration/2, rate)
}

var cueNotes = map[game.Cue][]note{
	game.CueBeneficial: {
		{880, WaveSine, 70 * time.Millisecond},
		{1320, WaveSine, 110 * time.Millisecond},
	},
	game.CueNeutral: {
		{440, WaveSquare, 60 * time.Millisecond},
	},
	game.CueHarmful: {
		{110, WaveSaw, 180 * time.Millisecond},
		{0, WaveNoise, 90 * time.Millisecond},
	},
	game.CueBoss: {
		{330, WaveSaw, 150 * time.Millisecond},
		{247, WaveSaw, 150 * time.Millisecond},
		{165, WaveSaw, 300 * time.Millisecond},
	},
	game.CueGameOver: {
		{392, WaveSine, 200 * time.Millisecond},
		{330, WaveSine, 200 * time.Millisecond},
		{262, WaveSine, 200 * time.Millisecond},
		{196, WaveSine, 500 * time.Millisecond},
	},
}

// CueDuration is how long the cue plays, or zero for unknown cues.
func CueDuration(cue game.Cue) time.Duration {
	var d time.Duration
	for _, n := range cueNotes[cue] {
		d += n.duration
	}
	return d
}

// CueStream builds a fresh streamer for cue. volume is a base-2 exponent:
// 0 leaves the level alone, -1 halves it. Unknown cues return nil.
func CueStream(cue game.Cue, rate beep.SampleRate, volume float64) beep.Streamer {
	notes, ok := cueNotes[cue]
	if !ok {
		return nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, n.stream(rate))
	}

	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: volume}
}
