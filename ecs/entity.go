package ecs

// Entity encodes both the slot index (lower 32 bits) and the generation (upper 32 bits).
// The zero Entity is never allocated and means "no entity".
type Entity uint64

// NewEntity creates an Entity from a slot index and generation
func NewEntity(index uint32, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity
func (e Entity) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the generation from the entity
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

// IsZero reports whether e is the "no entity" value
func (e Entity) IsZero() bool {
	return e == 0
}

// entityPool allocates entity ids with generational indices and a free list.
// An index goes back on the free list only once the entity has been purged
// from every store, and its generation is bumped so stale ids stay dead.
type entityPool struct {
	generations []uint32
	free        []bool
	freeList    []uint32
}

func newEntityPool() entityPool {
	return entityPool{
		generations: make([]uint32, 0, 256),
		free:        make([]bool, 0, 256),
		freeList:    make([]uint32, 0, 64),
	}
}

func (p *entityPool) create() Entity {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		p.free[idx] = false
		return NewEntity(idx, p.generations[idx])
	}

	idx := uint32(len(p.generations))
	p.generations = append(p.generations, 1)
	p.free = append(p.free, false)
	return NewEntity(idx, 1)
}

func (p *entityPool) alive(e Entity) bool {
	idx := e.Index()
	if e.IsZero() || int(idx) >= len(p.generations) {
		return false
	}
	return p.generations[idx] == e.Generation()
}

func (p *entityPool) destroy(e Entity) bool {
	if !p.alive(e) {
		return false
	}

	idx := e.Index()
	p.generations[idx]++
	if p.generations[idx] == 0 {
		p.generations[idx] = 1
	}
	p.free[idx] = true
	p.freeList = append(p.freeList, idx)
	return true
}

func (p *entityPool) each(yield func(Entity) bool) {
	for idx, gen := range p.generations {
		if p.free[idx] {
			continue
		}
		if !yield(NewEntity(uint32(idx), gen)) {
			return
		}
	}
}

func (p *entityPool) liveCount() int {
	return len(p.generations) - len(p.freeList)
}
