package input_test

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/plus3/nihilchroma/game"
	"github.com/plus3/nihilchroma/geom"
	"github.com/plus3/nihilchroma/input"
)

type keyboard map[ebiten.Key]bool

func newPoller(kb keyboard) *input.Poller {
	return &input.Poller{
		KeyDown: func(k ebiten.Key) bool { return kb[k] },
		Cursor:  func() (int, int) { return 320, 200 },
		Exit:    func() bool { return false },
	}
}

func TestPollEmitsEdgesOnly(t *testing.T) {
	kb := keyboard{}
	p := newPoller(kb)

	assert.Empty(t, p.Poll().Events)

	kb[ebiten.KeyW] = true
	assert.Equal(t, []game.KeyEvent{{Key: game.KeyUp, Pressed: true}}, p.Poll().Events)
	assert.Empty(t, p.Poll().Events, "held key repeats nothing")

	kb[ebiten.KeyW] = false
	assert.Equal(t, []game.KeyEvent{{Key: game.KeyUp, Pressed: false}}, p.Poll().Events)
}

func TestPollMergesBindingsPerDirection(t *testing.T) {
	kb := keyboard{ebiten.KeyA: true}
	p := newPoller(kb)
	p.Poll()

	kb[ebiten.KeyArrowLeft] = true
	kb[ebiten.KeyA] = false

	assert.Empty(t, p.Poll().Events)
}

func TestPollSeveralDirections(t *testing.T) {
	kb := keyboard{ebiten.KeyArrowDown: true, ebiten.KeyD: true}
	p := newPoller(kb)

	assert.Equal(t, []game.KeyEvent{
		{Key: game.KeyDown, Pressed: true},
		{Key: game.KeyRight, Pressed: true},
	}, p.Poll().Events)
}

func TestPollPointerAndExit(t *testing.T) {
	p := newPoller(keyboard{})
	p.Exit = func() bool { return true }

	in := p.Poll()

	assert.Equal(t, geom.V(320, 200), in.Pointer)
	assert.True(t, in.ExitRequested)
}
