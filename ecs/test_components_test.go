package ecs_test

import "github.com/plus3/nihilchroma/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Name struct {
	Value string
}

type Health struct {
	Current int
	Max     int
}

type PlayerController struct{}

// Custom primitive types for testing non-struct components
type Score int32
type Tag string

type Inventory struct {
	Items []string
}

func newTestStorage() *ecs.Storage {
	storage := ecs.NewStorage()
	ecs.AddStore[Position](storage)
	ecs.AddStore[Velocity](storage)
	ecs.AddStore[Name](storage)
	ecs.AddStore[Health](storage)
	ecs.AddStore[PlayerController](storage)
	ecs.AddStore[Score](storage)
	ecs.AddStore[Tag](storage)
	ecs.AddStore[Inventory](storage)
	return storage
}
