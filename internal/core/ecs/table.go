package ecs

// entitySlot tracks the live/free state and metadata of one table index.
type entitySlot struct {
	generation int16
	tag        Tag
	components ComponentIDSet
	free       bool
}

// EntityTable is the fixed-capacity array of entity slots the Manager
// allocates entities from. Every slot starts free; a slot's generation
// increments every time it is (re)allocated so stale handles can be
// detected without keeping the slot itself alive.
//
// GetNext (used by IterateMatching) scans inclusive of maxAllocatedIndex:
// the original implementation's scan bound excluded the highest-ever
// allocated index due to an off-by-one in its loop condition, which
// silently skipped the newest entity whenever it was also the last one
// in the table. Here the bound is maxAllocatedIndex itself, inclusive.
type EntityTable struct {
	slots             []entitySlot
	count             int
	maxAllocatedIndex int // -1 when no slot has ever been allocated
}

// NewEntityTable builds a table with the given fixed capacity.
func NewEntityTable(capacity int) *EntityTable {
	if capacity <= 0 || capacity >= int(InvalidEntityID) {
		panic("ecs: invalid EntityTable capacity")
	}
	slots := make([]entitySlot, capacity)
	for i := range slots {
		slots[i] = entitySlot{generation: NoGeneration, free: true}
	}
	return &EntityTable{slots: slots, maxAllocatedIndex: -1}
}

// Capacity returns the fixed table size.
func (t *EntityTable) Capacity() int { return len(t.slots) }

// Count returns the number of currently live entities.
func (t *EntityTable) Count() int { return t.count }

// Allocate reserves the smallest free slot whose index is >= minPosition
// and returns its handle, or ErrCapacity if no such slot is free.
func (t *EntityTable) Allocate(tag Tag, minPosition EntityID) (EntityHandle, error) {
	start := int(minPosition)
	if start < 0 {
		start = 0
	}
	for i := start; i < len(t.slots); i++ {
		slot := &t.slots[i]
		if !slot.free {
			continue
		}
		slot.free = false
		slot.tag = tag
		slot.components = ComponentIDSet{}
		if slot.generation < 0 {
			slot.generation = 0
		} else {
			slot.generation++
		}
		if i > t.maxAllocatedIndex {
			t.maxAllocatedIndex = i
		}
		t.count++
		return EntityHandle{ID: EntityID(i), Generation: slot.generation}, nil
	}
	return EntityHandle{}, ErrCapacity
}

// Free releases h's slot back to the free pool and recomputes
// maxAllocatedIndex if h.ID was the highest allocated index. It is a
// no-op returning false if h is already stale or invalid.
func (t *EntityTable) Free(h EntityHandle) bool {
	if !t.IsLive(h) {
		return false
	}
	slot := &t.slots[h.ID]
	slot.free = true
	slot.components = ComponentIDSet{}
	t.count--
	if int(h.ID) == t.maxAllocatedIndex {
		i := t.maxAllocatedIndex - 1
		for i >= 0 && t.slots[i].free {
			i--
		}
		t.maxAllocatedIndex = i
	}
	return true
}

// IsLive reports whether h refers to a currently allocated slot with a
// matching generation.
func (t *EntityTable) IsLive(h EntityHandle) bool {
	if !h.ID.IsValid() || int(h.ID) >= len(t.slots) {
		return false
	}
	slot := &t.slots[h.ID]
	return !slot.free && slot.generation == h.Generation
}

// HandleFor returns the current live handle for id, if any.
func (t *EntityTable) HandleFor(id EntityID) (EntityHandle, bool) {
	if !id.IsValid() || int(id) >= len(t.slots) {
		return EntityHandle{}, false
	}
	slot := &t.slots[id]
	if slot.free {
		return EntityHandle{}, false
	}
	return EntityHandle{ID: id, Generation: slot.generation}, true
}

func (t *EntityTable) components(id EntityID) *ComponentIDSet { return &t.slots[id].components }

func (t *EntityTable) tag(id EntityID) Tag { return t.slots[id].tag }

func (t *EntityTable) setTag(id EntityID, tag Tag) { t.slots[id].tag = tag }

// GetNext scans forward from (and including) start for the next live
// entity index whose component set is a superset of want and whose tag
// matches filterTag (TagNone matches any). It returns InvalidEntityID
// when the scan reaches the end with no match.
func (t *EntityTable) GetNext(start EntityID, want ComponentIDSet, filterTag Tag) EntityID {
	for i := int(start); i <= t.maxAllocatedIndex; i++ {
		slot := &t.slots[i]
		if slot.free {
			continue
		}
		if !want.IsSubsetOf(slot.components) {
			continue
		}
		if !TagsMatch(filterTag, slot.tag) {
			continue
		}
		return EntityID(i)
	}
	return InvalidEntityID
}

// IterateMatching calls fn for every live entity whose component set is
// a superset of want and whose tag matches filterTag, in ascending
// EntityID order, stopping early if fn returns false.
func (t *EntityTable) IterateMatching(want ComponentIDSet, filterTag Tag, fn func(EntityID) bool) {
	for id := t.GetNext(0, want, filterTag); id.IsValid(); id = t.GetNext(id+1, want, filterTag) {
		if !fn(id) {
			return
		}
	}
}
