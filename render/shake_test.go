package render_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/nihilchroma/game"
	"github.com/plus3/nihilchroma/render"
)

func TestShakeIgnoresEmptyRequest(t *testing.T) {
	s := render.NewShake(4, rand.New(rand.NewPCG(1, 2)))
	req := game.ScreenShake{Magnitude: 10}

	s.Consume(&req)
	s.Update(1.0 / 60)

	assert.Zero(t, s.Magnitude())
	assert.Zero(t, s.Offset())
}

func TestShakeConsumesRequest(t *testing.T) {
	s := render.NewShake(4, rand.New(rand.NewPCG(1, 2)))
	req := game.ScreenShake{Magnitude: 6, Requested: true}

	s.Consume(&req)

	assert.False(t, req.Requested)
	assert.Equal(t, float32(6), s.Magnitude())
}

func TestShakeOffsetBoundedAndDecays(t *testing.T) {
	s := render.NewShake(4, rand.New(rand.NewPCG(3, 4)))
	s.Consume(&game.ScreenShake{Magnitude: 6, Requested: true})

	prev := s.Magnitude()
	for range 30 {
		before := s.Magnitude()
		s.Update(1.0 / 60)
		off := s.Offset()
		assert.LessOrEqual(t, abs(off.X), before)
		assert.LessOrEqual(t, abs(off.Y), before)
		assert.Less(t, s.Magnitude(), prev)
		prev = s.Magnitude()
	}
}

func TestShakeStops(t *testing.T) {
	s := render.NewShake(4, rand.New(rand.NewPCG(5, 6)))
	s.Consume(&game.ScreenShake{Magnitude: 6, Requested: true})

	for range 600 {
		s.Update(1.0 / 60)
	}
	s.Update(1.0 / 60)

	assert.Zero(t, s.Magnitude())
	assert.Zero(t, s.Offset())
}

func TestShakeWeakerRequestKeepsStronger(t *testing.T) {
	s := render.NewShake(4, rand.New(rand.NewPCG(7, 8)))
	s.Consume(&game.ScreenShake{Magnitude: 6, Requested: true})
	s.Consume(&game.ScreenShake{Magnitude: 2, Requested: true})

	assert.Equal(t, float32(6), s.Magnitude())
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
