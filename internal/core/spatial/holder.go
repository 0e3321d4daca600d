package spatial

import "github.com/kestrelecs/kestrel/internal/core/ecs"

// RegionHolder is the caller-defined Holder type ecs.QueryOverlap1x1 and
// QueryOverlap2x2 expect: firstPass builds one from the querying
// entity's own id and spatial extent, and Iter walks the candidate B
// entities it names.
type RegionHolder struct {
	grid   *Grid
	region Region
	lower  ecs.EntityID
}

// NewRegionHolder builds a holder that iterates every distinct entity in
// grid covered by region with id strictly greater than self — so a
// caller driving QueryOverlap1x1 over all entities sees each unordered
// pair exactly once.
func NewRegionHolder(grid *Grid, region Region, self ecs.EntityID) RegionHolder {
	return RegionHolder{grid: grid, region: region, lower: self}
}

// Iter appends every candidate B id into scratch and returns it, satisfying
// ecs.Holder.
func (h RegionHolder) Iter(scratch []ecs.EntityID) []ecs.EntityID {
	return h.grid.Iter(h.lower, h.region, scratch)
}
