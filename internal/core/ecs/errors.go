package ecs

import "errors"

var (
	// ErrCapacity is returned when the entity table has no free slots.
	ErrCapacity = errors.New("ecs: entity table at capacity")
	// ErrStaleHandle is returned when an EntityHandle no longer refers to
	// a live entity (its slot was freed and possibly reallocated).
	ErrStaleHandle = errors.New("ecs: stale entity handle")
	// ErrComponentPresent is returned by AddComponent when the entity
	// already carries the component type.
	ErrComponentPresent = errors.New("ecs: component already present")
	// ErrComponentAbsent is returned by RemoveComponent/GetComponent when
	// the entity does not carry the component type.
	ErrComponentAbsent = errors.New("ecs: component not present")
	// ErrManagerLocked is returned by structural mutation (entity or
	// component add/remove, tag changes) attempted while the manager is
	// locked for iteration.
	ErrManagerLocked = errors.New("ecs: structural mutation while manager locked")
)
