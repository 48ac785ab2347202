package ecs

import "reflect"

// Commands provides a buffer for deferred ECS operations that are applied at the end of a frame,
// after every system ran and before the storage is maintained.
type Commands struct {
	spawns  []spawnCommand
	deletes []Entity
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    Entity
	component any
}

type removeComponentCommand struct {
	entity   Entity
	compType reflect.Type
}

// Defer queues fn to run after every structural change of the frame was applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity Entity) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity Entity, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity Entity, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Len returns the number of queued operations.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies the buffer to storage in a fixed order: deletes, removes,
// adds, spawns, then deferred functions. Deletes only queue the entity (it
// goes at Storage.Maintain), and no add or remove touches an entity that is
// queued for deletion.
func (c *Commands) Flush(storage *Storage) {
	for _, e := range c.deletes {
		storage.Delete(e)
	}
	for _, cmd := range c.removes {
		if !storage.Pending(cmd.entity) {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}
	for _, cmd := range c.adds {
		if storage.Alive(cmd.entity) && !storage.Pending(cmd.entity) {
			storage.AddComponent(cmd.entity, cmd.component)
		}
	}
	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}
	for _, fn := range c.defers {
		fn()
	}

	clear(c.adds)
	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
