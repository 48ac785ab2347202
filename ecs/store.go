package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"

	"github.com/kamstrup/intmap"
)

const (
	genericBlockSize = 64
)

// Store is a sparse container for every component of a single kind T, keyed by entity.
// Components are kept in fixed-size blocks; removing one zeroes its slot and puts
// the slot on a free list, so slots never move and component pointers stay valid
// for the rest of the frame.
type Store[T any] struct {
	blocks    [][genericBlockSize]T
	owners    [][genericBlockSize]Entity
	slots     *intmap.Map[Entity, int]
	freeSlots []int
	nextIndex int
	typ       reflect.Type

	// alive is set when the store belongs to a Storage; Add rejects ids it has purged.
	alive func(Entity) bool
}

// NewStore creates an empty store for component kind T.
func NewStore[T any]() *Store[T] {
	return &Store[T]{
		slots: intmap.New[Entity, int](64),
		typ:   reflect.TypeFor[T](),
	}
}

// Add attaches value to e. Adding to an entity that already has a T overwrites it.
// For a store registered on a Storage, adding to a purged or never-created id panics.
func (s *Store[T]) Add(e Entity, value T) *T {
	if s.alive != nil && !s.alive(e) {
		panic(fmt.Sprintf("ecs: add %s to dead entity %d:%d", s.typ, e.Index(), e.Generation()))
	}
	if index, ok := s.slots.Get(e); ok {
		ptr := s.at(index)
		*ptr = value
		return ptr
	}

	var index int
	if len(s.freeSlots) > 0 {
		index = s.freeSlots[len(s.freeSlots)-1]
		s.freeSlots = s.freeSlots[:len(s.freeSlots)-1]
	} else {
		index = s.nextIndex
		s.nextIndex++

		if index/genericBlockSize >= len(s.blocks) {
			s.blocks = append(s.blocks, [genericBlockSize]T{})
			s.owners = append(s.owners, [genericBlockSize]Entity{})
		}
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize
	s.blocks[blockIdx][slotIdx] = value
	s.owners[blockIdx][slotIdx] = e
	s.slots.Put(e, index)

	return &s.blocks[blockIdx][slotIdx]
}

// Remove detaches T from e. Removing a component that is not there is a no-op.
func (s *Store[T]) Remove(e Entity) bool {
	index, ok := s.slots.Get(e)
	if !ok {
		return false
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	var zero T
	s.blocks[blockIdx][slotIdx] = zero
	s.owners[blockIdx][slotIdx] = 0
	s.slots.Del(e)
	s.freeSlots = append(s.freeSlots, index)
	return true
}

// Get returns a pointer to e's component, or nil if e has none.
func (s *Store[T]) Get(e Entity) *T {
	index, ok := s.slots.Get(e)
	if !ok {
		return nil
	}
	return s.at(index)
}

// Has reports whether e has a component in this store.
func (s *Store[T]) Has(e Entity) bool {
	_, ok := s.slots.Get(e)
	return ok
}

// Len returns the number of entities holding a T.
func (s *Store[T]) Len() int {
	return s.slots.Len()
}

// Clear removes every component from the store.
func (s *Store[T]) Clear() {
	s.blocks = nil
	s.owners = nil
	s.freeSlots = nil
	s.nextIndex = 0
	s.slots.Clear()
}

// All iterates over every (entity, component) pair in slot order.
// The slot range is fixed when iteration starts, so components added during
// the pass into fresh slots are not visited.
func (s *Store[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		end := s.nextIndex
		for i := 0; i < end; i++ {
			blockIdx := i / genericBlockSize
			slotIdx := i % genericBlockSize

			owner := s.owners[blockIdx][slotIdx]
			if owner.IsZero() {
				continue
			}

			if !yield(owner, &s.blocks[blockIdx][slotIdx]) {
				return
			}
		}
	}
}

// Entities iterates over the entities holding a T in slot order.
func (s *Store[T]) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for e := range s.All() {
			if !yield(e) {
				return
			}
		}
	}
}

func (s *Store[T]) at(index int) *T {
	return &s.blocks[index/genericBlockSize][index%genericBlockSize]
}

func (s *Store[T]) componentType() reflect.Type {
	return s.typ
}

func (s *Store[T]) addAny(e Entity, item any) bool {
	switch v := item.(type) {
	case T:
		s.Add(e, v)
	case *T:
		if v == nil {
			return false
		}
		s.Add(e, *v)
	default:
		return false
	}
	return true
}

func (s *Store[T]) getAny(e Entity) any {
	ptr := s.Get(e)
	if ptr == nil {
		return nil
	}
	return ptr
}

func (s *Store[T]) pointer(e Entity) unsafe.Pointer {
	return unsafe.Pointer(s.Get(e))
}
