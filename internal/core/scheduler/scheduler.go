// Package scheduler implements the asynchronous per-frame task
// dispatcher: a FIFO of pending tasks drained by a fixed pool of worker
// goroutines and an optionally-cooperating main goroutine, gated by a
// component/tag conflict check instead of per-task locking.
package scheduler

import (
	"context"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/kestrelecs/kestrel/internal/core/observability/log"
)

// Scheduler owns the pending FIFO, the worker/main running-task slots,
// and the completed-node set described by the dispatcher algorithm: one
// mutex protects all of it, and one condition variable wakes workers
// when new work might be claimable.
type Scheduler struct {
	mu   sync.Mutex
	cond *sync.Cond

	fifo       []*Task
	maxPending int

	workerTasks []*Task
	mainTask    *Task

	completed NodeSet
	running   bool

	group *errgroup.Group
	log   log.Log
}

// New builds a Scheduler with maxWorkers worker slots (the main thread
// is a separate, always-available slot) and a pending-FIFO bound of
// maxPending.
func New(maxWorkers, maxPending int, logger log.Log) *Scheduler {
	s := &Scheduler{
		maxPending:  maxPending,
		workerTasks: make([]*Task, maxWorkers),
		log:         logger,
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Enqueue appends t to the FIFO. It fails with ErrCapacity if the
// pending queue is full and ErrInvalidNode if t.NodeID (other than
// NoNode) is outside [0, MaxNodes). Required node ids are not checked:
// NodeSet.WithNode cannot record an id outside that range, so such a
// requirement is already dropped when Enqueue sees the task.
func (s *Scheduler) Enqueue(t *Task) error {
	if t.NodeID != NoNode && t.NodeID >= MaxNodes {
		return ErrInvalidNode
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.fifo) >= s.maxPending {
		return ErrCapacity
	}
	s.fifo = append(s.fifo, t)
	s.cond.Broadcast()
	return nil
}

// claimLocked implements the dispatcher algorithm: the first FIFO entry
// whose dependencies are satisfied and which does not conflict with any
// currently running task is removed and returned. Callers must hold mu.
func (s *Scheduler) claimLocked() *Task {
	for i, t := range s.fifo {
		if !t.RequiredCompletedNodes.subsetOf(s.completed) {
			continue
		}
		if s.conflictsWithRunningLocked(t) {
			continue
		}
		s.fifo = append(s.fifo[:i:i], s.fifo[i+1:]...)
		return t
	}
	return nil
}

func (s *Scheduler) conflictsWithRunningLocked(t *Task) bool {
	for _, running := range s.workerTasks {
		if running != nil && conflicts(t, running) {
			return true
		}
	}
	return s.mainTask != nil && conflicts(t, s.mainTask)
}

func (s *Scheduler) completeLocked(t *Task) {
	if t.NodeID != NoNode {
		s.completed = s.completed.WithNode(t.NodeID)
	}
}

// StartWorkers launches the configured number of worker goroutines.
// Call StopWorkers to join them.
func (s *Scheduler) StartWorkers(ctx context.Context) {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	s.group, _ = errgroup.WithContext(ctx)
	for slot := range s.workerTasks {
		slot := slot
		s.group.Go(func() error {
			s.workerLoop(slot)
			return nil
		})
	}
}

// StopWorkers signals shutdown and blocks until every worker goroutine
// has returned. Tasks still in the FIFO at shutdown are discarded, as
// tasks run to completion but are never resumed across a shutdown.
func (s *Scheduler) StopWorkers() error {
	s.mu.Lock()
	s.running = false
	discarded := len(s.fifo)
	s.fifo = nil
	s.cond.Broadcast()
	s.mu.Unlock()

	var err error
	if s.group != nil {
		err = s.group.Wait()
	}
	if discarded > 0 && s.log != nil {
		s.log.Info("scheduler: discarded pending tasks at shutdown", log.Int("count", discarded))
	}
	return multierr.Append(err, nil)
}

func (s *Scheduler) workerLoop(slot int) {
outer:
	for {
		s.mu.Lock()
		for {
			if !s.running {
				s.mu.Unlock()
				return
			}
			t := s.claimLocked()
			if t == nil {
				s.cond.Wait()
				continue
			}
			s.workerTasks[slot] = t
			s.mu.Unlock()

			t.Dispatch()

			s.mu.Lock()
			s.completeLocked(t)
			s.workerTasks[slot] = nil
			s.mu.Unlock()
			if t.Notifier != nil {
				t.Notifier.Open()
			}
			s.cond.Broadcast()
			continue outer
		}
	}
}

// WorkFromMainThread runs the same claim-execute sequence as a worker
// goroutine but on the calling goroutine, using a dedicated main-thread
// slot that participates in conflict checks like any worker. If loop is
// true it repeats until no task is claimable; otherwise it attempts at
// most one task.
func (s *Scheduler) WorkFromMainThread(loop bool) {
	for {
		s.mu.Lock()
		t := s.claimLocked()
		if t == nil {
			s.mu.Unlock()
			return
		}
		s.mainTask = t
		s.mu.Unlock()

		t.Dispatch()

		s.mu.Lock()
		s.completeLocked(t)
		s.mainTask = nil
		s.mu.Unlock()
		if t.Notifier != nil {
			t.Notifier.Open()
		}
		s.cond.Broadcast()

		if !loop {
			return
		}
	}
}

// AnyWorkerBusy reports whether any worker slot currently holds a task.
// It does not consider the main-thread slot: the main loop calls this to
// decide whether it is safe to proceed past the drain barrier together
// with Pending().
func (s *Scheduler) AnyWorkerBusy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.workerTasks {
		if t != nil {
			return true
		}
	}
	return false
}

// Pending returns the number of tasks still sitting in the FIFO.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fifo)
}

// ResetCompletedNodes clears the completed-node set; called once per
// frame after all tasks have drained.
func (s *Scheduler) ResetCompletedNodes() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = 0
}

// CompletedNodes returns a snapshot of the completed-node set, mainly
// for tests.
func (s *Scheduler) CompletedNodes() NodeSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.completed
}
