package ecs_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/nihilchroma/ecs"
)

type funcSystem func(frame *ecs.UpdateFrame)

func (f funcSystem) Execute(frame *ecs.UpdateFrame) { f(frame) }

func TestCommandsSpawnAppliedAfterSystems(t *testing.T) {
	storage := newTestStorage()
	scheduler := ecs.NewScheduler(storage)
	positions := ecs.NewView[struct{ *Position }](storage)

	seen := -1
	scheduler.Register(funcSystem(func(frame *ecs.UpdateFrame) {
		frame.Commands.Spawn(Position{X: 1, Y: 2}, Velocity{DX: 0.5, DY: 0.5})
		frame.Commands.Spawn(Position{X: 3, Y: 4})
	}))
	scheduler.Register(funcSystem(func(frame *ecs.UpdateFrame) {
		seen = positions.Count()
	}))

	scheduler.Once(1)

	assert.Equal(t, 0, seen, "spawns are not visible to later systems of the same frame")
	assert.Equal(t, 2, positions.Count())
}

func TestCommandsAddAndRemove(t *testing.T) {
	storage := newTestStorage()
	scheduler := ecs.NewScheduler(storage)
	e := storage.Spawn(Position{}, Health{Current: 10, Max: 10})

	scheduler.Register(funcSystem(func(frame *ecs.UpdateFrame) {
		frame.Commands.AddComponent(e, Velocity{DX: 5, DY: 10})
		frame.Commands.RemoveComponent(e, reflect.TypeFor[Health]())
	}))
	scheduler.Once(1)

	v := ecs.ReadComponent[Velocity](storage, e)
	require.NotNil(t, v)
	assert.Equal(t, Velocity{DX: 5, DY: 10}, *v)
	assert.Nil(t, ecs.ReadComponent[Health](storage, e))
}

func TestCommandsDeleteWinsOverAdd(t *testing.T) {
	storage := newTestStorage()
	scheduler := ecs.NewScheduler(storage)
	e := storage.Spawn(Position{})

	scheduler.Register(funcSystem(func(frame *ecs.UpdateFrame) {
		frame.Commands.AddComponent(e, Velocity{DX: 1, DY: 1})
		frame.Commands.Delete(e)
	}))
	scheduler.Once(1)

	assert.False(t, storage.Alive(e))
	assert.Equal(t, 1, scheduler.LastPurged())
	assert.Zero(t, ecs.StoreFor[Velocity](storage).Len())
}

func TestCommandsDeferRunsAfterStructuralChanges(t *testing.T) {
	storage := newTestStorage()
	scheduler := ecs.NewScheduler(storage)
	positions := ecs.NewView[struct{ *Position }](storage)

	var counted int
	scheduler.Register(funcSystem(func(frame *ecs.UpdateFrame) {
		frame.Commands.Defer(func() { counted = positions.Count() })
		frame.Commands.Spawn(Position{})
	}))
	scheduler.Once(1)

	assert.Equal(t, 1, counted)
}

func TestCommandsResetAfterFlush(t *testing.T) {
	storage := newTestStorage()
	scheduler := ecs.NewScheduler(storage)

	var queued []int
	scheduler.Register(funcSystem(func(frame *ecs.UpdateFrame) {
		queued = append(queued, frame.Commands.Len())
		frame.Commands.Spawn(Position{})
	}))
	scheduler.Once(1)
	scheduler.Once(1)

	assert.Equal(t, []int{0, 0}, queued)
	assert.Equal(t, 2, storage.EntityCount())
}
