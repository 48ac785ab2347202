package debugui

import (
	"github.com/plus3/nihilchroma/ecs"
)

// Each debug window is a component on its own entity, so that its state lives
// in the same storage it inspects.

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selected           ecs.Entity
	filterText         string
	filterStore        string
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selected ecs.Entity
}

type StoreViewerComponent struct {
	sortColumn    int
	sortAscending bool
}

type PerformanceStatsComponent struct {
	historyFrames int
	frameHistory  []float32
	frameIndex    int
	purged        int
}

type ResourcesComponent struct{}
