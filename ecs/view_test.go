package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/nihilchroma/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView(t *testing.T) {
	storage := newTestStorage()
	entityId := storage.Spawn(&Position{X: 1, Y: 2}, Score(32))

	view := ecs.NewView[struct {
		*Position
		*Score
	}](storage)

	item := view.Get(entityId)
	require.NotNil(t, item)
	assert.Equal(t, Score(32), *item.Score)
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, float32(2), item.Position.Y)
}

func TestViewMissingComponent(t *testing.T) {
	storage := newTestStorage()
	entityId := storage.Spawn(&Position{X: 5, Y: 10})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	assert.Nil(t, view.Get(entityId))

	var result struct {
		*Position
		*Velocity
	}
	assert.False(t, view.Fill(entityId, &result))
}

func TestViewComponentMutation(t *testing.T) {
	storage := newTestStorage()
	entityId := storage.Spawn(&Position{X: 1, Y: 1}, &Velocity{DX: 0, DY: 0})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	item := view.Get(entityId)
	require.NotNil(t, item)

	item.Position.X = 100
	item.Velocity.DY = 10

	pos := storage.GetComponent(entityId, reflect.TypeOf(Position{})).(*Position)
	assert.Equal(t, float32(100), pos.X)
	vel := storage.GetComponent(entityId, reflect.TypeOf(Velocity{})).(*Velocity)
	assert.Equal(t, float32(10), vel.DY)
}

func TestViewUnknownEntity(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[struct {
		*Position
	}](storage)

	assert.Nil(t, view.Get(ecs.NewEntity(9999, 9999)))
	assert.Nil(t, view.Get(0))
}

func TestViewUnregisteredComponentPanics(t *testing.T) {
	storage := ecs.NewStorage()
	ecs.AddStore[Position](storage)

	assert.Panics(t, func() {
		ecs.NewView[struct {
			*Position
			*Velocity
		}](storage)
	})
}

func TestViewInvalidTagPanics(t *testing.T) {
	storage := newTestStorage()
	assert.Panics(t, func() {
		ecs.NewView[struct {
			*Position
			Velocity *Velocity `ecs:"maybe"`
		}](storage)
	})
}

func TestViewOptionalOnlyPanics(t *testing.T) {
	storage := newTestStorage()
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Velocity *Velocity `ecs:"optional"`
		}](storage)
	})
}

func TestViewEntityField(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{X: 4})

	view := ecs.NewView[struct {
		Entity ecs.Entity
		*Position
	}](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, id, item.Entity)

	for e, row := range view.Iter() {
		assert.Equal(t, e, row.Entity)
	}
}

func TestViewOptionalComponents(t *testing.T) {
	storage := newTestStorage()
	moving := storage.Spawn(Position{X: 1}, Velocity{DX: 3})
	still := storage.Spawn(Position{X: 2})

	view := ecs.NewView[struct {
		*Position
		Velocity *Velocity `ecs:"optional"`
	}](storage)

	row := view.Get(moving)
	require.NotNil(t, row)
	require.NotNil(t, row.Velocity)
	assert.Equal(t, float32(3), row.Velocity.DX)

	row = view.Get(still)
	require.NotNil(t, row)
	assert.Nil(t, row.Velocity)

	assert.Equal(t, 2, view.Count())
}

func TestViewIterJoin(t *testing.T) {
	storage := newTestStorage()

	both := map[ecs.Entity]bool{}
	for i := 0; i < 50; i++ {
		e := storage.Spawn(Position{X: float32(i)})
		if i%5 == 0 {
			storage.AddComponent(e, Velocity{DX: float32(i)})
			both[e] = true
		}
	}
	storage.Spawn(Velocity{DX: -1})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	seen := map[ecs.Entity]bool{}
	for e, row := range view.Iter() {
		assert.False(t, seen[e], "entity visited twice")
		seen[e] = true
		assert.Equal(t, row.Position.X, row.Velocity.DX)
	}
	assert.Equal(t, both, seen)
}

func TestViewIterStableUnderUnrelatedMutation(t *testing.T) {
	storage := newTestStorage()
	for i := 0; i < 100; i++ {
		storage.Spawn(Position{X: float32(i)}, Velocity{})
	}

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	// Attaching and detaching components of an unrelated kind mid-pass must not
	// cause skips or repeats.
	seen := map[ecs.Entity]int{}
	for e := range view.Iter() {
		seen[e]++
		storage.AddComponent(e, Name{Value: "tagged"})
		storage.RemoveComponent(e, reflect.TypeFor[Health]())
	}

	assert.Len(t, seen, 100)
	for _, n := range seen {
		assert.Equal(t, 1, n)
	}
}

func TestViewValues(t *testing.T) {
	storage := newTestStorage()
	storage.Spawn(Health{Current: 10})
	storage.Spawn(Health{Current: 20})

	view := ecs.NewView[struct {
		*Health
	}](storage)

	total := 0
	for row := range view.Values() {
		total += row.Current
	}
	assert.Equal(t, 30, total)
}

func TestViewSpawn(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[struct {
		*Position
		Velocity *Velocity `ecs:"optional"`
	}](storage)

	id := view.Spawn(struct {
		*Position
		Velocity *Velocity `ecs:"optional"`
	}{Position: &Position{X: 8}})

	row := view.Get(id)
	require.NotNil(t, row)
	assert.Equal(t, float32(8), row.Position.X)
	assert.Nil(t, row.Velocity)

	assert.Panics(t, func() {
		view.Spawn(struct {
			*Position
			Velocity *Velocity `ecs:"optional"`
		}{})
	})
}
