package game

import (
	"github.com/plus3/nihilchroma/ecs"
)

// InputSystem folds this frame's key edges into the player's held keys,
// accelerates the player along every held direction, and turns the player
// toward the pointer.
type InputSystem struct {
	Player       ecs.Entity
	Acceleration float32
	Upscale      float32

	Players ecs.Query[struct {
		*Transform
		*Velocity
		*PlayerInput
	}]
	Input ecs.Singleton[FrameInput]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	player := s.Players.Get(s.Player)
	if player == nil {
		panic("input: player entity has no Transform, Velocity and PlayerInput")
	}
	in := s.Input.MustGet()

	if player.PlayerInput.Pressed == nil {
		player.PlayerInput.Pressed = make(map[Key]bool)
	}
	for _, ev := range in.Events {
		if ev.Pressed {
			player.PlayerInput.Pressed[ev.Key] = true
		} else {
			delete(player.PlayerInput.Pressed, ev.Key)
		}
	}

	step := s.Acceleration * float32(frame.DeltaTime)
	for _, key := range directionKeys {
		if !player.PlayerInput.Pressed[key] {
			continue
		}
		d := key.Direction()
		player.Velocity.X += d.X * step
		player.Velocity.Y += d.Y * step
	}

	upscale := s.Upscale
	if upscale <= 0 {
		upscale = 1
	}
	target := in.Pointer.Scale(1 / upscale)
	player.Transform.Angle = target.Sub(player.Transform.Position).Angle()
}
