package ecs

import "sync/atomic"

// Manager binds an EntityTable to a set of typed component storages and
// exposes the blocking mutation/query API. It performs no internal
// locking of its own: the scheduler package is responsible for ensuring
// that structural mutation never runs concurrently with a query that
// could observe it, the same division of responsibility the original
// engine drew between its manager and its async dispatcher.
//
// Lock/Unlock instead implement a reentrant *guard*: while locked,
// structural mutation (AddEntity, RemoveEntity, AddComponent,
// RemoveComponent, SetTag) returns ErrManagerLocked rather than
// corrupting iteration state, mirroring the original's debug_lock
// assertion but made into a real, always-on check.
type Manager struct {
	registry  *registry
	table     *EntityTable
	storages  []anyStorage
	lockDepth int32
}

// NewManager builds a Manager whose entity table has the given fixed
// capacity.
func NewManager(capacity int) *Manager {
	return &Manager{
		registry: newRegistry(),
		table:    NewEntityTable(capacity),
	}
}

// Lock marks the manager as being iterated; nested calls are allowed and
// must be matched by an equal number of Unlock calls.
func (m *Manager) Lock() { atomic.AddInt32(&m.lockDepth, 1) }

// Unlock reverses one Lock call.
func (m *Manager) Unlock() { atomic.AddInt32(&m.lockDepth, -1) }

// Locked reports whether the manager is currently under at least one
// Lock call.
func (m *Manager) Locked() bool { return atomic.LoadInt32(&m.lockDepth) > 0 }

func (m *Manager) checkUnlocked() error {
	if m.Locked() {
		return ErrManagerLocked
	}
	return nil
}

// EntityCount returns the number of currently live entities.
func (m *Manager) EntityCount() int { return m.table.Count() }

// AddEntity allocates the smallest free slot at index >= minPosition and
// tags it with tag. Pass minPosition 0 for no preference.
func (m *Manager) AddEntity(tag Tag, minPosition EntityID) (EntityHandle, error) {
	if err := m.checkUnlocked(); err != nil {
		return EntityHandle{}, err
	}
	return m.table.Allocate(tag, minPosition)
}

// RemoveEntity frees h's slot and clears every component it carried.
func (m *Manager) RemoveEntity(h EntityHandle) error {
	if err := m.checkUnlocked(); err != nil {
		return err
	}
	if !m.table.IsLive(h) {
		return ErrStaleHandle
	}
	comps := *m.table.components(h.ID)
	for i := range m.registry.infos {
		id := ComponentID(i)
		if comps.Test(id) && m.storages[id] != nil {
			m.storages[id].remove(h.ID)
		}
	}
	m.table.Free(h)
	return nil
}

// Tag returns h's current tag, or TagNone with ok=false if h is stale.
func (m *Manager) Tag(h EntityHandle) (Tag, bool) {
	if !m.table.IsLive(h) {
		return TagNone, false
	}
	return m.table.tag(h.ID), true
}

// SetTag changes h's tag. Like other structural mutation, this is
// disallowed while the manager is locked: a query holding a Tag-based
// filter must not observe a tag change mid-scan.
func (m *Manager) SetTag(h EntityHandle, tag Tag) error {
	if err := m.checkUnlocked(); err != nil {
		return err
	}
	if !m.table.IsLive(h) {
		return ErrStaleHandle
	}
	m.table.setTag(h.ID, tag)
	return nil
}

// Handle resolves id to its current live handle.
func (m *Manager) Handle(id EntityID) (EntityHandle, bool) { return m.table.HandleFor(id) }

// IterateEntities calls fn for every live entity matching filter, in
// ascending EntityID order, with the manager locked for the duration.
// It is the untyped counterpart to Query1..Query4, useful when the set
// of optional accesses is decided per-call rather than at the type
// level.
func (m *Manager) IterateEntities(filter Filter, fn func(EntityHandle) bool) {
	m.Lock()
	defer m.Unlock()
	m.table.IterateMatching(filter.Mask(), filter.Tag(), func(id EntityID) bool {
		h, _ := m.table.HandleFor(id)
		return fn(h)
	})
}

// ComponentMask returns h's current component presence set.
func (m *Manager) ComponentMask(h EntityHandle) (ComponentIDSet, bool) {
	if !m.table.IsLive(h) {
		return ComponentIDSet{}, false
	}
	return *m.table.components(h.ID), true
}

func (m *Manager) ensureStorageSlot(id ComponentID) {
	for len(m.storages) <= int(id) {
		m.storages = append(m.storages, nil)
	}
}

// RegisterComponent assigns a ComponentID to T under the given Strategy.
// It must be called before the first AddComponent/AddEmptyComponent call
// for T if a non-Dense strategy is wanted; otherwise T is lazily
// registered Dense on first use.
func RegisterComponent[T any](m *Manager, strategy Strategy) ComponentID {
	id := Register[T](m.registry, strategy)
	m.ensureStorageSlot(id)
	if m.storages[id] == nil {
		m.storages[id] = m.registry.info(id).newStore(m.table.Capacity())
	}
	return id
}

func storageFor[T any](m *Manager) (ComponentID, Storage[T]) {
	id := RegisterComponent[T](m, Dense)
	return id, m.storages[id].(Storage[T])
}

// ComponentIDOf returns the ComponentID for T, registering it Dense if
// this is the first reference to T.
func ComponentIDOf[T any](m *Manager) ComponentID {
	id, _ := storageFor[T](m)
	return id
}

// AddComponent attaches value of type T to h. It returns ErrComponentPresent
// if h already carries T.
func AddComponent[T any](m *Manager, h EntityHandle, value T) error {
	if err := m.checkUnlocked(); err != nil {
		return err
	}
	if !m.table.IsLive(h) {
		return ErrStaleHandle
	}
	id, store := storageFor[T](m)
	mask := m.table.components(h.ID)
	if mask.Test(id) {
		return ErrComponentPresent
	}
	store.Set(h.ID, value)
	mask.Set(id)
	return nil
}

// AddEmptyComponent attaches the zero value of T to h; useful for
// marker/tag components that carry no data.
func AddEmptyComponent[T any](m *Manager, h EntityHandle) error {
	var zero T
	return AddComponent[T](m, h, zero)
}

// RemoveComponent detaches T from h. It returns ErrComponentAbsent if h
// does not carry T.
func RemoveComponent[T any](m *Manager, h EntityHandle) error {
	if err := m.checkUnlocked(); err != nil {
		return err
	}
	if !m.table.IsLive(h) {
		return ErrStaleHandle
	}
	id, store := storageFor[T](m)
	mask := m.table.components(h.ID)
	if !mask.Test(id) {
		return ErrComponentAbsent
	}
	store.remove(h.ID)
	mask.Clear(id)
	return nil
}

// HasComponent reports whether h currently carries T.
func HasComponent[T any](m *Manager, h EntityHandle) bool {
	if !m.table.IsLive(h) {
		return false
	}
	id, _ := storageFor[T](m)
	return m.table.components(h.ID).Test(id)
}

// GetComponent returns a pointer to h's T value. The pointer is valid
// until the next structural mutation of h's component or the underlying
// storage (e.g. a Sorted insertion reslicing its backing array).
func GetComponent[T any](m *Manager, h EntityHandle) (*T, error) {
	if !m.table.IsLive(h) {
		return nil, ErrStaleHandle
	}
	_, store := storageFor[T](m)
	v, ok := store.Get(h.ID)
	if !ok {
		return nil, ErrComponentAbsent
	}
	return v, nil
}
