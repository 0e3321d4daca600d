package ecs

import "fmt"

// MaxComponentTypes bounds how many distinct component types a single
// process may register. It must not exceed maxWords*64.
const MaxComponentTypes = maxWords * 64

// ComponentID is the dense index a component type is registered under.
type ComponentID uint16

// Strategy selects which Storage implementation backs a component type.
// The original per-type tuning choice (dense array vs. sorted vector vs.
// sparse map) is preserved verbatim: it trades iteration speed against
// memory for components that are rare or added/removed in bursts.
type Strategy uint8

const (
	// Dense stores one slot per entity table index; O(1) access, O(n)
	// full-table memory even for entities that never have the component.
	Dense Strategy = iota
	// Sorted keeps a compact sorted-by-EntityID slice with a cached
	// iteration cursor, trading O(log n) lookup for compact storage and
	// fast ordered iteration.
	Sorted
	// Sparse uses a map; best for components attached to very few
	// entities relative to the table size.
	Sparse
)

func (s Strategy) usesCachedIter() bool { return s == Sorted }

// componentInfo is the type-erased registration record kept per
// ComponentID so the Manager can manage storage without importing the
// concrete component type.
type componentInfo struct {
	name     string
	strategy Strategy
	newStore func(capacity int) anyStorage
}

// registry is owned by a single Manager: each Manager assigns its own
// dense ComponentID per Go type on first use, mirroring how the
// original engine assigns a compile-time ComponentId per C++ type, but
// scoped per-instance rather than per-binary so tests can run many
// managers with independent component id spaces in the same process.
type registry struct {
	infos []componentInfo
	byPtr map[any]ComponentID
}

func newRegistry() *registry {
	return &registry{byPtr: make(map[any]ComponentID)}
}

type typeKey[T any] struct{}

// Register assigns (or returns the existing) ComponentID for type T under
// the given strategy. Only the first registration of T chooses its
// storage strategy: a later call for the same T returns the existing id
// and ignores its strategy argument.
func Register[T any](r *registry, strategy Strategy) ComponentID {
	key := any(typeKey[T]{})
	if id, ok := r.byPtr[key]; ok {
		return id
	}
	if len(r.infos) >= MaxComponentTypes {
		panic(fmt.Sprintf("ecs: MaxComponentTypes (%d) exceeded", MaxComponentTypes))
	}
	id := ComponentID(len(r.infos))
	r.infos = append(r.infos, componentInfo{
		name:     fmt.Sprintf("%T", *new(T)),
		strategy: strategy,
		newStore: func(capacity int) anyStorage { return newTypedStorage[T](strategy, capacity) },
	})
	r.byPtr[key] = id
	return id
}

func (r *registry) info(id ComponentID) componentInfo {
	return r.infos[id]
}

func (r *registry) count() int { return len(r.infos) }
