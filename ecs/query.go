package ecs

import (
	"iter"
)

// Query is a View declared as a system field. The Scheduler initializes it at
// registration time; systems then range over it each frame.
type Query[T any] struct {
	view *View[T]
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
}

func (q *Query[T]) mustView() *View[T] {
	if q.view == nil {
		panic("Query used before Init()")
	}
	return q.view
}

// Iter returns an iterator over entity IDs and component data.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	return q.mustView().Iter()
}

// Values returns an iterator over component data only.
func (q *Query[T]) Values() iter.Seq[T] {
	return q.mustView().Values()
}

// Get fills a single row for e, or returns nil if e lacks a required component.
func (q *Query[T]) Get(e Entity) *T {
	return q.mustView().Get(e)
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	return q.mustView().Count()
}
