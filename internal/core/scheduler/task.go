package scheduler

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/kestrelecs/kestrel/internal/core/ecs"
)

// MaxNodes bounds how many distinct ExecutionNodeId values a scheduler
// instance can track completion for; NodeSet is a single uint64 bitmask
// over that range.
const MaxNodes = 64

// ExecutionNodeID identifies a position in the per-frame dependency
// graph a task can require to have already completed.
type ExecutionNodeID uint8

// NoNode marks a task that no other task depends on; it is never added
// to the completed set.
const NoNode ExecutionNodeID = 0xFF

// NodeSet is a bitmask over ExecutionNodeID values in [0, MaxNodes).
type NodeSet uint64

// WithNode returns a NodeSet with id added.
func (s NodeSet) WithNode(id ExecutionNodeID) NodeSet { return s | (1 << uint(id)) }

func (s NodeSet) has(id ExecutionNodeID) bool { return s&(1<<uint(id)) != 0 }

func (s NodeSet) subsetOf(other NodeSet) bool { return s&^other == 0 }

// TaskFilter is the component/tag access descriptor the conflict check
// runs against: readOnly components may be read concurrently by any
// number of tasks, mutable components exclude every other access to the
// same component, and two filters with non-matching tags never conflict
// regardless of their component sets.
type TaskFilter struct {
	ReadOnly ecs.ComponentIDSet
	Mutable  ecs.ComponentIDSet
	Tag      ecs.Tag
}

// Signature returns a fingerprint of the filter's shape, useful for
// logging/metrics grouping without dumping the full bitset.
func (f TaskFilter) Signature() uint64 {
	ro := f.ReadOnly.Signature()
	mu := f.Mutable.Signature()
	buf := make([]byte, 0, 8*(len(ro)+len(mu))+1)
	for _, w := range ro {
		buf = binary.LittleEndian.AppendUint64(buf, w)
	}
	for _, w := range mu {
		buf = binary.LittleEndian.AppendUint64(buf, w)
	}
	buf = append(buf, byte(f.Tag))
	return xxhash.Sum64(buf)
}

func filtersConflict(a, b TaskFilter) bool {
	if !ecs.TagsMatch(a.Tag, b.Tag) {
		return false
	}
	if a.Mutable.Overlaps(b.Mutable) {
		return true
	}
	if a.Mutable.Overlaps(b.ReadOnly) {
		return true
	}
	if a.ReadOnly.Overlaps(b.Mutable) {
		return true
	}
	return false
}

// Task is one unit of scheduler work: a type-erased dispatch closure
// plus the filter(s) the conflict check reasons about. Construct with
// NewTask and the With* chain methods.
type Task struct {
	TraceID                uuid.UUID
	Dispatch               func()
	Filter                 TaskFilter
	FilterSecondPass       *TaskFilter
	RequiredCompletedNodes NodeSet
	NodeID                 ExecutionNodeID
	Notifier               *Gate
}

// NewTask builds a task with no node dependency and no notifier.
func NewTask(dispatch func(), filter TaskFilter) *Task {
	return &Task{
		TraceID:  uuid.New(),
		Dispatch: dispatch,
		Filter:   filter,
		NodeID:   NoNode,
	}
}

// WithSecondPass attaches the filter covering an overlap task's second
// pass, so the conflict check also guards against interleaving it with
// other tasks' component access.
func (t *Task) WithSecondPass(filter TaskFilter) *Task {
	t.FilterSecondPass = &filter
	return t
}

// WithNode assigns the node id this task's completion unblocks.
func (t *Task) WithNode(id ExecutionNodeID) *Task {
	t.NodeID = id
	return t
}

// WithRequires adds node ids that must be completed before this task is
// eligible for dispatch.
func (t *Task) WithRequires(ids ...ExecutionNodeID) *Task {
	for _, id := range ids {
		t.RequiredCompletedNodes = t.RequiredCompletedNodes.WithNode(id)
	}
	return t
}

// WithNotifier attaches a gate to open once the task completes.
func (t *Task) WithNotifier(g *Gate) *Task {
	t.Notifier = g
	return t
}

func conflicts(x, y *Task) bool {
	if filtersConflict(x.Filter, y.Filter) {
		return true
	}
	if x.FilterSecondPass != nil && filtersConflict(*x.FilterSecondPass, y.Filter) {
		return true
	}
	if y.FilterSecondPass != nil && filtersConflict(x.Filter, *y.FilterSecondPass) {
		return true
	}
	if x.FilterSecondPass != nil && y.FilterSecondPass != nil && filtersConflict(*x.FilterSecondPass, *y.FilterSecondPass) {
		return true
	}
	return false
}
