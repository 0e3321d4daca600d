// Package ecs implements the entity/component storage and blocking
// iteration engine: the fixed-capacity entity table, the three storage
// strategies (dense, sorted, sparse), the component-id bitset, and the
// Manager that binds them together behind a blocking query API. The
// concurrent task dispatcher built on top of this lives in
// internal/core/scheduler.
package ecs

import "fmt"

// EntityID is a dense 16-bit index into the entity table.
type EntityID uint16

// InvalidEntityID is the sentinel that sorts below every valid id.
const InvalidEntityID EntityID = 0xFFFF

// IsValid reports whether id names a real table slot.
func (id EntityID) IsValid() bool { return id < InvalidEntityID }

// Less orders the sentinel below every valid id and valid ids by index.
func (id EntityID) Less(other EntityID) bool {
	if id == InvalidEntityID {
		return other != InvalidEntityID
	}
	return id < other
}

func (id EntityID) String() string {
	if id == InvalidEntityID {
		return "entity(invalid)"
	}
	return fmt.Sprintf("entity(%d)", uint16(id))
}

// Tag is a small partition label carried by entities for coarse dispatch.
type Tag uint8

// TagNone matches every other tag.
const TagNone Tag = 0xFF

// TagsMatch reports whether a and b partition the same dispatch group:
// equal tags always match, and TagNone matches anything.
func TagsMatch(a, b Tag) bool {
	return a == b || a == TagNone || b == TagNone
}

// NoGeneration is the generation value of a slot that has never been
// allocated.
const NoGeneration int16 = -1

// EntityHandle pairs a generation with an EntityID so staleness is
// detectable without owning pointers between entities.
type EntityHandle struct {
	Generation int16
	ID         EntityID
}

// IsValidForm reports whether the handle's shape could ever be live; it
// does not consult any table (EntityTable.IsLive does that).
func (h EntityHandle) IsValidForm() bool {
	return h.ID.IsValid() && h.Generation >= 0
}
