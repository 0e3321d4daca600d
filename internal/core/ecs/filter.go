package ecs

// Filter describes an entity selection: every component id set in want
// must be present, and the entity's tag must match tag (TagNone matches
// any). Filter is immutable; each With* call returns a new value so it
// can be built up and shared safely across goroutines.
type Filter struct {
	want ComponentIDSet
	tag  Tag
}

// NewFilter returns an empty filter matching every tag.
func NewFilter() Filter { return Filter{tag: TagNone} }

// With requires the presence of the given component id.
func (f Filter) With(id ComponentID) Filter {
	f.want.Set(id)
	return f
}

// WithTag restricts the filter to entities whose tag matches tag under
// TagsMatch: entities carrying tag itself and entities carrying TagNone
// both pass. Passing TagNone removes the restriction.
func (f Filter) WithTag(tag Tag) Filter {
	f.tag = tag
	return f
}

// Mask returns the underlying required-component set.
func (f Filter) Mask() ComponentIDSet { return f.want }

// Tag returns the required tag.
func (f Filter) Tag() Tag { return f.tag }

// Matches reports whether mask/tag satisfy f.
func (f Filter) Matches(mask ComponentIDSet, tag Tag) bool {
	return f.want.IsSubsetOf(mask) && TagsMatch(f.tag, tag)
}
