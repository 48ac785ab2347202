package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"
)

var entityType = reflect.TypeFor[Entity]()

// View represents a join over a specific combination of components.
// The type T should be a struct with embedded pointer fields for each component type.
// Named fields can be marked as optional using the `ecs:"optional"` struct tag, and
// a field of type Entity receives the id of the current row.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	stores      []iComponentStorage
	optional    []bool
	fieldOffset []uintptr

	entityOffset uintptr
	hasEntity    bool
}

// NewView creates a new view for the given struct type.
// Every component kind named by T must have a registered store.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityType {
			v.entityOffset = field.Offset
			v.hasEntity = true
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		componentType := fieldType.Elem()
		store := storage.storeByType(componentType)
		if store == nil {
			panic(fmt.Sprintf("View field %s: no store registered for %s", field.Name, componentType))
		}

		// Embedded fields are always required
		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}

		v.types = append(v.types, componentType)
		v.stores = append(v.stores, store)
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	if v.driver() == nil {
		panic("View struct must have at least one required component")
	}

	return v
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is missing any required components.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(e Entity, ptr *T) bool {
	structPtr := unsafe.Pointer(ptr)

	for i, store := range v.stores {
		fieldPtr := unsafe.Add(structPtr, v.fieldOffset[i])

		component := store.pointer(e)
		if component == nil && !v.optional[i] {
			return false
		}
		*(*unsafe.Pointer)(fieldPtr) = component
	}

	if v.hasEntity {
		*(*Entity)(unsafe.Add(structPtr, v.entityOffset)) = e
	}

	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(e Entity) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// driver returns the smallest required store. Iteration walks it and checks
// membership in the others.
func (v *View[T]) driver() iComponentStorage {
	var smallest iComponentStorage
	for i, store := range v.stores {
		if v.optional[i] {
			continue
		}
		if smallest == nil || store.Len() < smallest.Len() {
			smallest = store
		}
	}
	return smallest
}

// Iter returns an iterator over all entities that have all the required components.
// The iterator yields (Entity, T) pairs where T is the populated view struct.
// Each entity is visited at most once per pass.
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		driver := v.driver()

		var result T
		for e := range driver.Entities() {
			if !v.Fill(e, &result) {
				continue
			}
			if !yield(e, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of entities matching the view.
func (v *View[T]) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}

// Spawn creates a new entity with the non-nil components of data.
func (v *View[T]) Spawn(data T) Entity {
	structPtr := unsafe.Pointer(&data)

	for i := range v.stores {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))
		if componentPtr == nil && !v.optional[i] {
			panic("required component is nil in View.Spawn")
		}
	}

	e := v.storage.Create()
	for i, store := range v.stores {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))
		if componentPtr == nil {
			continue
		}
		store.addAny(e, reflect.NewAt(v.types[i], componentPtr).Interface())
	}
	return e
}
