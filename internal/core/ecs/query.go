package ecs

// Query1..Query4 are the fixed-arity substitute for a variadic
// "for every entity with components (A, B, ...) call fn" primitive: Go
// generics have no variadic type parameter list, so each arity gets its
// own function instead of one Query[...T] taking a type pack. Callers
// needing more than four component types should split the work across
// calls or fall back to Manager.ComponentMask plus manual GetComponent
// calls.
//
// Every Query* call locks the manager for its duration, so fn must not
// attempt structural mutation (AddEntity, RemoveComponent, ...); doing
// so returns ErrManagerLocked to the mutating call, not to Query* itself.

func Query1[A any](m *Manager, tag Tag, fn func(EntityHandle, *A)) {
	idA := ComponentIDOf[A](m)
	want := NewComponentIDSet(idA)
	m.Lock()
	defer m.Unlock()
	m.table.IterateMatching(want, tag, func(id EntityID) bool {
		h, _ := m.table.HandleFor(id)
		a, err := GetComponent[A](m, h)
		if err == nil {
			fn(h, a)
		}
		return true
	})
}

func Query2[A, B any](m *Manager, tag Tag, fn func(EntityHandle, *A, *B)) {
	idA, idB := ComponentIDOf[A](m), ComponentIDOf[B](m)
	want := NewComponentIDSet(idA, idB)
	m.Lock()
	defer m.Unlock()
	m.table.IterateMatching(want, tag, func(id EntityID) bool {
		h, _ := m.table.HandleFor(id)
		a, errA := GetComponent[A](m, h)
		b, errB := GetComponent[B](m, h)
		if errA == nil && errB == nil {
			fn(h, a, b)
		}
		return true
	})
}

func Query3[A, B, C any](m *Manager, tag Tag, fn func(EntityHandle, *A, *B, *C)) {
	idA, idB, idC := ComponentIDOf[A](m), ComponentIDOf[B](m), ComponentIDOf[C](m)
	want := NewComponentIDSet(idA, idB, idC)
	m.Lock()
	defer m.Unlock()
	m.table.IterateMatching(want, tag, func(id EntityID) bool {
		h, _ := m.table.HandleFor(id)
		a, errA := GetComponent[A](m, h)
		b, errB := GetComponent[B](m, h)
		c, errC := GetComponent[C](m, h)
		if errA == nil && errB == nil && errC == nil {
			fn(h, a, b, c)
		}
		return true
	})
}

func Query4[A, B, C, D any](m *Manager, tag Tag, fn func(EntityHandle, *A, *B, *C, *D)) {
	idA, idB, idC, idD := ComponentIDOf[A](m), ComponentIDOf[B](m), ComponentIDOf[C](m), ComponentIDOf[D](m)
	want := NewComponentIDSet(idA, idB, idC, idD)
	m.Lock()
	defer m.Unlock()
	m.table.IterateMatching(want, tag, func(id EntityID) bool {
		h, _ := m.table.HandleFor(id)
		a, errA := GetComponent[A](m, h)
		b, errB := GetComponent[B](m, h)
		c, errC := GetComponent[C](m, h)
		d, errD := GetComponent[D](m, h)
		if errA == nil && errB == nil && errC == nil && errD == nil {
			fn(h, a, b, c, d)
		}
		return true
	})
}

// Opt is the result of an optional component access inside a Query*Opt*
// call: Ok reports whether the entity carried the component, Value points
// to it when Ok is true. Unlike a mandatory argument, a missing optional
// component never excludes the entity from a match — it is the Go
// counterpart to the Option<&T>/Option<&mut T> argument forms, which read
// the entity bitset first and do not extend the effective filter.
type Opt[T any] struct {
	Value *T
	Ok    bool
}

func resolveOpt[T any](m *Manager, h EntityHandle) Opt[T] {
	v, err := GetComponent[T](m, h)
	return Opt[T]{Value: v, Ok: err == nil}
}

// QueryOpt1 iterates every entity matching filter, with no mandatory
// component access: A is resolved as an optional access, so fn runs for
// every matched entity regardless of whether it carries A.
func QueryOpt1[A any](m *Manager, filter Filter, fn func(EntityHandle, Opt[A])) {
	ComponentIDOf[A](m)
	m.Lock()
	defer m.Unlock()
	m.table.IterateMatching(filter.Mask(), filter.Tag(), func(id EntityID) bool {
		h, _ := m.table.HandleFor(id)
		fn(h, resolveOpt[A](m, h))
		return true
	})
}

// QueryOpt2 is QueryOpt1 generalized to two optional accesses.
func QueryOpt2[A, B any](m *Manager, filter Filter, fn func(EntityHandle, Opt[A], Opt[B])) {
	ComponentIDOf[A](m)
	ComponentIDOf[B](m)
	m.Lock()
	defer m.Unlock()
	m.table.IterateMatching(filter.Mask(), filter.Tag(), func(id EntityID) bool {
		h, _ := m.table.HandleFor(id)
		fn(h, resolveOpt[A](m, h), resolveOpt[B](m, h))
		return true
	})
}

// Query1Opt1 resolves A as a mandatory access (added to filter's mask to
// form the effective filter) and B as an optional access.
func Query1Opt1[A, B any](m *Manager, filter Filter, fn func(EntityHandle, *A, Opt[B])) {
	ComponentIDOf[B](m)
	eff := filter.With(ComponentIDOf[A](m))
	m.Lock()
	defer m.Unlock()
	m.table.IterateMatching(eff.Mask(), eff.Tag(), func(id EntityID) bool {
		h, _ := m.table.HandleFor(id)
		a, err := GetComponent[A](m, h)
		if err != nil {
			return true
		}
		fn(h, a, resolveOpt[B](m, h))
		return true
	})
}

// Query2Opt1 is Query1Opt1 generalized to two mandatory accesses plus one
// optional access.
func Query2Opt1[A, B, C any](m *Manager, filter Filter, fn func(EntityHandle, *A, *B, Opt[C])) {
	ComponentIDOf[C](m)
	eff := filter.With(ComponentIDOf[A](m)).With(ComponentIDOf[B](m))
	m.Lock()
	defer m.Unlock()
	m.table.IterateMatching(eff.Mask(), eff.Tag(), func(id EntityID) bool {
		h, _ := m.table.HandleFor(id)
		a, errA := GetComponent[A](m, h)
		b, errB := GetComponent[B](m, h)
		if errA != nil || errB != nil {
			return true
		}
		fn(h, a, b, resolveOpt[C](m, h))
		return true
	})
}

// Query1Opt2 is Query1Opt1 generalized to two optional accesses alongside
// the one mandatory access.
func Query1Opt2[A, B, C any](m *Manager, filter Filter, fn func(EntityHandle, *A, Opt[B], Opt[C])) {
	ComponentIDOf[B](m)
	ComponentIDOf[C](m)
	eff := filter.With(ComponentIDOf[A](m))
	m.Lock()
	defer m.Unlock()
	m.table.IterateMatching(eff.Mask(), eff.Tag(), func(id EntityID) bool {
		h, _ := m.table.HandleFor(id)
		a, err := GetComponent[A](m, h)
		if err != nil {
			return true
		}
		fn(h, a, resolveOpt[B](m, h), resolveOpt[C](m, h))
		return true
	})
}

// Holder is the contract an overlap query's firstPass return value must
// satisfy: Iter appends every candidate partner entity id into scratch
// and returns the (possibly reallocated) buffer, the same contract
// spatial.Grid.Iter/spatial.RegionHolder.Iter implement over a grid
// region. Reusing scratch across every A entity in one overlap query
// avoids a per-pair allocation.
type Holder interface {
	Iter(scratch []EntityID) []EntityID
}

// QueryOverlap1x1 implements the two-phase overlap iteration contract:
// for every entity A matching (filterA's mask+tag) carrying *A, firstPass
// builds a Holder from it; Holder.Iter is then asked for the candidate B
// entity ids, and for each one that also matches (filterB's mask+tag) and
// carries *B, secondPass is invoked with mutable access to the holder.
// This decouples the scheduler and manager from the spatial index: H is
// the only type that knows how to produce B-candidates from an A entity's
// own state (typically a spatial.RegionHolder built around A's position).
//
// scratch is reused across the whole call (one firstPass may produce many
// candidates, none of which allocates a fresh buffer); the caller should
// retain the returned slice and pass it back in on the next call.
func QueryOverlap1x1[A, B any, H Holder](
	m *Manager,
	filterA, filterB Filter,
	firstPass func(EntityHandle, *A) H,
	secondPass func(*H, EntityHandle, *B),
	scratch []EntityID,
) []EntityID {
	effA := filterA.With(ComponentIDOf[A](m))
	effB := filterB.With(ComponentIDOf[B](m))

	m.Lock()
	defer m.Unlock()
	m.table.IterateMatching(effA.Mask(), effA.Tag(), func(idx EntityID) bool {
		hA, _ := m.table.HandleFor(idx)
		a, err := GetComponent[A](m, hA)
		if err != nil {
			return true
		}
		holder := firstPass(hA, a)
		scratch = holder.Iter(scratch[:0])
		for _, candidate := range scratch {
			hB, ok := m.table.HandleFor(candidate)
			if !ok {
				continue
			}
			mask, _ := m.ComponentMask(hB)
			bTag, _ := m.Tag(hB)
			if !effB.Matches(mask, bTag) {
				continue
			}
			b, err := GetComponent[B](m, hB)
			if err != nil {
				continue
			}
			secondPass(&holder, hB, b)
		}
		return true
	})
	return scratch
}

// QueryOverlap2x2 is QueryOverlap1x1 generalized to two components read
// per side.
func QueryOverlap2x2[A1, A2, B1, B2 any, H Holder](
	m *Manager,
	filterA, filterB Filter,
	firstPass func(EntityHandle, *A1, *A2) H,
	secondPass func(*H, EntityHandle, *B1, *B2),
	scratch []EntityID,
) []EntityID {
	effA := filterA.With(ComponentIDOf[A1](m)).With(ComponentIDOf[A2](m))
	effB := filterB.With(ComponentIDOf[B1](m)).With(ComponentIDOf[B2](m))

	m.Lock()
	defer m.Unlock()
	m.table.IterateMatching(effA.Mask(), effA.Tag(), func(idx EntityID) bool {
		hA, _ := m.table.HandleFor(idx)
		a1, errA1 := GetComponent[A1](m, hA)
		a2, errA2 := GetComponent[A2](m, hA)
		if errA1 != nil || errA2 != nil {
			return true
		}
		holder := firstPass(hA, a1, a2)
		scratch = holder.Iter(scratch[:0])
		for _, candidate := range scratch {
			hB, ok := m.table.HandleFor(candidate)
			if !ok {
				continue
			}
			mask, _ := m.ComponentMask(hB)
			bTag, _ := m.Tag(hB)
			if !effB.Matches(mask, bTag) {
				continue
			}
			b1, errB1 := GetComponent[B1](m, hB)
			b2, errB2 := GetComponent[B2](m, hB)
			if errB1 != nil || errB2 != nil {
				continue
			}
			secondPass(&holder, hB, b1, b2)
		}
		return true
	})
	return scratch
}
