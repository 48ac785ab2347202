package main

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/nihilchroma/debugui"
	debugui_ebiten "github.com/plus3/nihilchroma/debugui/ebiten"
	"github.com/plus3/nihilchroma/ecs"
	"github.com/plus3/nihilchroma/game"
	"github.com/plus3/nihilchroma/geom"
	"github.com/plus3/nihilchroma/render"
)

// Game adapts a session and its renderer to ebiten's loop.
type Game struct {
	session  *game.Session
	renderer *render.Renderer
	imgui    *debugui_ebiten.ImguiBackend
}

func (g *Game) Update() error {
	dt := 1 / float64(ebiten.TPS())

	if g.imgui != nil {
		g.imgui.BeginFrame()
	}
	done := g.session.Step(dt)
	if g.imgui != nil {
		g.imgui.EndFrame()
	}

	if done {
		return ebiten.Termination
	}
	g.renderer.Update(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.renderer.ScreenSize()
	if g.imgui != nil {
		g.imgui.Layout(w, h)
	}
	return w, h
}

// imguiAwareInput freezes the aim point while the pointer is over a debug
// window. Key edges always pass so no direction gets stuck.
type imguiAwareInput struct {
	src   game.InputSource
	state *ecs.Singleton[debugui.ImguiInputState]
	last  geom.Vec2
}

func (in *imguiAwareInput) Poll() game.FrameInput {
	frame := in.src.Poll()
	if state := in.state.Get(); state != nil && state.WantCaptureMouse {
		frame.Pointer = in.last
	} else {
		in.last = frame.Pointer
	}
	return frame
}
