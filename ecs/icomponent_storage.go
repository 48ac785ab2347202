package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iComponentStorage is the type-erased view of a Store used by Storage, View and Query.
type iComponentStorage interface {
	Has(e Entity) bool
	Remove(e Entity) bool
	Len() int
	Entities() iter.Seq[Entity]
	Clear()

	componentType() reflect.Type
	addAny(e Entity, item any) bool
	getAny(e Entity) any
	pointer(e Entity) unsafe.Pointer
}
