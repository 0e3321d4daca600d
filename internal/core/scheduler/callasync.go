package scheduler

import "github.com/kestrelecs/kestrel/internal/core/ecs"

// Access describes one mandatory component reference a CallAsync* helper
// takes: Mutable true means &mut T (exclusive), false means &T
// (shared-readable). It is the scheduler-level counterpart to the
// mandatory Args the manager's callBlocking dispatch wrapper resolves;
// optional accesses never appear here because they do not add to the
// conflict filter.
type Access struct {
	ID      ecs.ComponentID
	Mutable bool
}

func buildFilter(tag ecs.Tag, accesses ...Access) TaskFilter {
	f := TaskFilter{Tag: tag}
	for _, a := range accesses {
		if a.Mutable {
			f.Mutable.Set(a.ID)
		} else {
			f.ReadOnly.Set(a.ID)
		}
	}
	return f
}

// dispatchOptions bundles the scheduling metadata every CallAsync*
// variant accepts alongside its typed per-entity function: the node
// this task's completion satisfies, the nodes it requires completed
// first, and an optional gate to open on completion.
type dispatchOptions struct {
	NodeID   ExecutionNodeID
	Requires NodeSet
	Notifier *Gate
}

// DispatchOption configures a CallAsync* task.
type DispatchOption func(*dispatchOptions)

// WithNode sets the node id this task's completion satisfies.
func WithNode(id ExecutionNodeID) DispatchOption {
	return func(o *dispatchOptions) { o.NodeID = id }
}

// WithRequires adds node ids that must be completed first.
func WithRequires(ids ...ExecutionNodeID) DispatchOption {
	return func(o *dispatchOptions) {
		for _, id := range ids {
			o.Requires = o.Requires.WithNode(id)
		}
	}
}

// WithNotifier attaches a gate to open on completion.
func WithNotifier(g *Gate) DispatchOption {
	return func(o *dispatchOptions) { o.Notifier = g }
}

func resolveOptions(opts []DispatchOption) dispatchOptions {
	o := dispatchOptions{NodeID: NoNode}
	for _, apply := range opts {
		apply(&o)
	}
	return o
}

func buildTask(dispatch func(), filter TaskFilter, opts dispatchOptions) *Task {
	t := NewTask(dispatch, filter).WithNode(opts.NodeID)
	t.RequiredCompletedNodes = opts.Requires
	t.Notifier = opts.Notifier
	return t
}

// CallAsync1 enqueues a task that invokes fn once per entity matching tag
// and carrying A, with fn's access to A marked mutable or read-only per
// mutableA.
func CallAsync1[A any](
	s *Scheduler, m *ecs.Manager,
	tag ecs.Tag, mutableA bool,
	fn func(ecs.EntityHandle, *A),
	opts ...DispatchOption,
) error {
	idA := ecs.ComponentIDOf[A](m)
	filter := buildFilter(tag, Access{ID: idA, Mutable: mutableA})
	dispatch := func() { ecs.Query1[A](m, tag, fn) }
	return s.Enqueue(buildTask(dispatch, filter, resolveOptions(opts)))
}

// CallAsync2 is CallAsync1 generalized to two mandatory components.
func CallAsync2[A, B any](
	s *Scheduler, m *ecs.Manager,
	tag ecs.Tag, mutableA, mutableB bool,
	fn func(ecs.EntityHandle, *A, *B),
	opts ...DispatchOption,
) error {
	idA, idB := ecs.ComponentIDOf[A](m), ecs.ComponentIDOf[B](m)
	filter := buildFilter(tag, Access{ID: idA, Mutable: mutableA}, Access{ID: idB, Mutable: mutableB})
	dispatch := func() { ecs.Query2[A, B](m, tag, fn) }
	return s.Enqueue(buildTask(dispatch, filter, resolveOptions(opts)))
}

// CallAsyncOverlap1x1 enqueues a two-phase overlap task: the manager walks
// every entity matching (tagA, A), asks firstPass to build an
// ecs.Holder (typically a spatial.RegionHolder around the entity's own
// position), then drives that holder to find candidate B entities
// matching (tagB, B) and invokes secondPass on each. The conflict filter
// covers both passes' component access so no concurrently running task
// can observe a half-updated Holder. The scratch buffer backing the
// candidate walk is shared by every A entity visited in this one
// dispatch, so its capacity carries over from one A entity to the next
// instead of being reallocated for each; callers that enqueue this every
// frame with a fresh call (the same pattern CallAsync1/CallAsync2 use)
// start each frame with an empty buffer.
func CallAsyncOverlap1x1[A, B any, H ecs.Holder](
	s *Scheduler, m *ecs.Manager,
	tagA, tagB ecs.Tag, mutableA, mutableB bool,
	firstPass func(ecs.EntityHandle, *A) H,
	secondPass func(*H, ecs.EntityHandle, *B),
	opts ...DispatchOption,
) error {
	idA, idB := ecs.ComponentIDOf[A](m), ecs.ComponentIDOf[B](m)
	cfA := buildFilter(tagA, Access{ID: idA, Mutable: mutableA})
	cfB := buildFilter(tagB, Access{ID: idB, Mutable: mutableB})
	qfA := ecs.NewFilter().WithTag(tagA)
	qfB := ecs.NewFilter().WithTag(tagB)
	var scratch []ecs.EntityID
	dispatch := func() {
		scratch = ecs.QueryOverlap1x1[A, B, H](m, qfA, qfB, firstPass, secondPass, scratch)
	}
	task := buildTask(dispatch, cfA, resolveOptions(opts)).WithSecondPass(cfB)
	return s.Enqueue(task)
}
