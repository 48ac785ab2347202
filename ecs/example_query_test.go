package ecs_test

import (
	"fmt"

	"github.com/plus3/nihilchroma/ecs"
)

// ExampleQuery demonstrates a standalone query. Queries are normally declared
// as system fields and initialized by the Scheduler, but NewQuery binds one
// directly to a storage.
func ExampleQuery() {
	storage := ecs.NewStorage()
	ecs.AddStore[Position](storage)
	ecs.AddStore[Velocity](storage)
	ecs.AddStore[Health](storage)

	storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 0})
	storage.Spawn(Position{X: 10, Y: 10}, Velocity{DX: 0, DY: 1}, Health{Current: 100, Max: 100})
	storage.Spawn(Position{X: 20, Y: 20}, Velocity{DX: -1, DY: -1})
	storage.Spawn(Position{X: 30, Y: 30})

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](storage)

	fmt.Printf("Moving entities: %d\n", query.Count())
	for item := range query.Values() {
		newX := item.Position.X + item.Velocity.DX
		newY := item.Position.Y + item.Velocity.DY
		fmt.Printf("Position (%.0f, %.0f) -> (%.0f, %.0f)\n", item.Position.X, item.Position.Y, newX, newY)
	}

	// Output:
	// Moving entities: 3
	// Position (0, 0) -> (1, 0)
	// Position (10, 10) -> (10, 11)
	// Position (20, 20) -> (19, 19)
}
