package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"
)

// Storage is the main ECS storage: one typed Store per component kind, the
// entity registry, and the singleton resources.
type Storage struct {
	stores     map[reflect.Type]iComponentStorage
	storeOrder []iComponentStorage
	singletons map[reflect.Type]*singletonEntry
	pool       entityPool

	pending      map[Entity]struct{}
	pendingOrder []Entity
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates an empty storage with no registered component kinds
func NewStorage() *Storage {
	return &Storage{
		stores:     make(map[reflect.Type]iComponentStorage),
		singletons: make(map[reflect.Type]*singletonEntry),
		pool:       newEntityPool(),
		pending:    make(map[Entity]struct{}),
	}
}

// AddStore registers a store for component kind T. Each kind may be registered once.
func AddStore[T any](s *Storage) *Store[T] {
	typ := reflect.TypeFor[T]()
	if _, exists := s.stores[typ]; exists {
		panic(fmt.Sprintf("ecs: store for %s already registered", typ))
	}

	store := NewStore[T]()
	store.alive = s.pool.alive
	s.stores[typ] = store
	s.storeOrder = append(s.storeOrder, store)
	return store
}

// StoreFor returns the registered store for T, or nil.
func StoreFor[T any](s *Storage) *Store[T] {
	store, ok := s.stores[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return store.(*Store[T])
}

func (s *Storage) storeByType(typ reflect.Type) iComponentStorage {
	return s.stores[typ]
}

// Create allocates a fresh entity id. Components can be attached immediately.
func (s *Storage) Create() Entity {
	return s.pool.create()
}

// Spawn creates an entity and attaches the given components to it. Every
// component kind must have a registered store.
func (s *Storage) Spawn(components ...any) Entity {
	e := s.Create()
	for _, comp := range components {
		s.AddComponent(e, comp)
	}
	return e
}

// Delete queues e for removal at the next Maintain. Until then the entity stays
// visible to every query. Deleting twice is a no-op.
func (s *Storage) Delete(e Entity) {
	if !s.pool.alive(e) {
		return
	}
	if _, queued := s.pending[e]; queued {
		return
	}
	s.pending[e] = struct{}{}
	s.pendingOrder = append(s.pendingOrder, e)
}

// Pending reports whether e is queued for deletion.
func (s *Storage) Pending(e Entity) bool {
	_, queued := s.pending[e]
	return queued
}

// Maintain purges every queued entity from every store and recycles the ids.
// It returns the number of entities purged.
func (s *Storage) Maintain() int {
	if len(s.pendingOrder) == 0 {
		return 0
	}

	purged := 0
	for _, e := range s.pendingOrder {
		for _, store := range s.storeOrder {
			store.Remove(e)
		}
		if s.pool.destroy(e) {
			purged++
		}
	}

	clear(s.pending)
	s.pendingOrder = s.pendingOrder[:0]
	return purged
}

// Alive reports whether e was created and has not been purged yet.
func (s *Storage) Alive(e Entity) bool {
	return s.pool.alive(e)
}

// Entities yields every live entity in index order, including ones queued for deletion.
func (s *Storage) Entities() iter.Seq[Entity] {
	return s.pool.each
}

// EntityCount returns the number of live entities, including ones queued for deletion.
func (s *Storage) EntityCount() int {
	return s.pool.liveCount()
}

// AddComponent attaches component to e, overwriting an existing one of the same kind.
// e must be alive; adding to a purged id panics.
func (s *Storage) AddComponent(e Entity, component any) {
	compType := componentTypeOf(component)
	store := s.stores[compType]
	if store == nil {
		panic(fmt.Sprintf("ecs: no store registered for %s", compType))
	}
	if !store.addAny(e, component) {
		panic(fmt.Sprintf("ecs: cannot add nil %s", compType))
	}
}

// RemoveComponent detaches the component of the given kind from e.
func (s *Storage) RemoveComponent(e Entity, compType reflect.Type) bool {
	store := s.stores[compType]
	if store == nil {
		return false
	}
	return store.Remove(e)
}

// GetComponent returns a pointer to e's component of the given kind, or nil.
func (s *Storage) GetComponent(e Entity, compType reflect.Type) any {
	store := s.stores[compType]
	if store == nil {
		return nil
	}
	return store.getAny(e)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(e Entity, compType reflect.Type) bool {
	store := s.stores[compType]
	if store == nil {
		return false
	}
	return store.Has(e)
}

// ComponentTypes lists the registered component kinds in registration order.
func (s *Storage) ComponentTypes() []reflect.Type {
	types := make([]reflect.Type, 0, len(s.storeOrder))
	for _, store := range s.storeOrder {
		types = append(types, store.componentType())
	}
	return types
}

// AddSingleton stores value as the singleton of its type, replacing any previous one.
// value may be given directly or as a pointer.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			panic("ecs: cannot add nil singleton")
		}
		v = v.Elem()
	}

	if entry, ok := s.singletons[v.Type()]; ok {
		entry.value.Set(v)
		return
	}

	ptr := reflect.New(v.Type())
	ptr.Elem().Set(v)
	s.singletons[v.Type()] = &singletonEntry{
		value:   ptr.Elem(),
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton sets *out to the stored singleton. out must be a **T.
// It reports whether a singleton of type T exists.
func (s *Storage) ReadSingleton(out any) bool {
	outVal := reflect.ValueOf(out)
	if outVal.Kind() != reflect.Ptr || outVal.Elem().Kind() != reflect.Ptr {
		panic("ecs: ReadSingleton expects a pointer to a pointer")
	}

	entry := s.getSingletonEntry(outVal.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	outVal.Elem().Set(entry.value.Addr())
	return true
}

// Singletons returns pointers to every stored singleton, keyed by type.
func (s *Storage) Singletons() map[reflect.Type]any {
	out := make(map[reflect.Type]any, len(s.singletons))
	for typ, entry := range s.singletons {
		out[typ] = entry.value.Addr().Interface()
	}
	return out
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

func componentTypeOf(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("ecs: nil component")
	}
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

type ComponentReader interface {
	GetComponent(Entity, reflect.Type) any
}

// ReadComponent returns e's component of kind T, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, e Entity) *T {
	comp, _ := reader.GetComponent(e, reflect.TypeFor[T]()).(*T)
	return comp
}
