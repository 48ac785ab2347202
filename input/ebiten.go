// Package input polls keyboard and mouse state from ebiten once per frame.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/nihilchroma/game"
	"github.com/plus3/nihilchroma/geom"
)

type binding struct {
	key ebiten.Key
	dir game.Key
}

// WASD and the arrow keys both steer.
var bindings = []binding{
	{ebiten.KeyW, game.KeyUp},
	{ebiten.KeyArrowUp, game.KeyUp},
	{ebiten.KeyS, game.KeyDown},
	{ebiten.KeyArrowDown, game.KeyDown},
	{ebiten.KeyA, game.KeyLeft},
	{ebiten.KeyArrowLeft, game.KeyLeft},
	{ebiten.KeyD, game.KeyRight},
	{ebiten.KeyArrowRight, game.KeyRight},
}

var directions = [...]game.Key{game.KeyUp, game.KeyDown, game.KeyLeft, game.KeyRight}

// Poller turns held keys into per-direction press and release edges. A
// direction is held while any of its keys is down, so switching from W to the
// up arrow produces no events.
type Poller struct {
	KeyDown func(ebiten.Key) bool
	Cursor  func() (int, int)
	Exit    func() bool

	held map[game.Key]bool
}

// NewPoller reads ebiten's global input state. The caller must enable
// ebiten.SetWindowClosingHandled for window close to count as exit.
func NewPoller() *Poller {
	return &Poller{
		KeyDown: ebiten.IsKeyPressed,
		Cursor:  ebiten.CursorPosition,
		Exit: func() bool {
			return inpututil.IsKeyJustPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed()
		},
	}
}

func (p *Poller) Poll() game.FrameInput {
	if p.held == nil {
		p.held = make(map[game.Key]bool, len(directions))
	}

	var now [len(directions)]bool
	for _, b := range bindings {
		if p.KeyDown(b.key) {
			now[b.dir] = true
		}
	}

	var in game.FrameInput
	for _, dir := range directions {
		if now[dir] == p.held[dir] {
			continue
		}
		p.held[dir] = now[dir]
		in.Events = append(in.Events, game.KeyEvent{Key: dir, Pressed: now[dir]})
	}

	x, y := p.Cursor()
	in.Pointer = geom.V(float32(x), float32(y))
	in.ExitRequested = p.Exit()

	return in
}
