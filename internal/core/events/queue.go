// Package events implements the bounded MPMC deferred-effect queue: any
// task or host callback can push an Executable, and the main loop drains
// it once per frame outside the manager token, after every scheduled
// task has completed.
package events

import (
	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/kestrelecs/kestrel/internal/core/observability/log"
)

// Executable is the contract a deferred event must satisfy. Execute is
// expected to be total: it runs with no manager token held, so it is
// free to perform structural mutation, but it must not block.
type Executable interface {
	Execute()
}

// Envelope pairs a pushed Executable with a trace id, used for logging a
// failed/slow drain back to the event that caused it.
type Envelope struct {
	ID   uuid.UUID
	Item Executable
}

// Queue is a bounded, channel-backed multi-producer/multi-consumer event
// queue. Push never blocks the caller past the channel send itself;
// TryPop never blocks.
type Queue struct {
	ch  chan Envelope
	log log.Log
}

// New builds a Queue with the given fixed capacity.
func New(capacity int, logger log.Log) *Queue {
	return &Queue{ch: make(chan Envelope, capacity), log: logger}
}

// Push enqueues item, returning ErrCapacity if the queue is full rather
// than blocking.
func (q *Queue) Push(item Executable) error {
	select {
	case q.ch <- Envelope{ID: uuid.New(), Item: item}:
		return nil
	default:
		return ErrCapacity
	}
}

// TryPop removes and returns the oldest pending envelope, if any.
func (q *Queue) TryPop() (Envelope, bool) {
	select {
	case env := <-q.ch:
		return env, true
	default:
		return Envelope{}, false
	}
}

// Drain repeatedly TryPops and executes events until the queue is empty,
// aggregating any panics recovered from individual Execute calls into a
// single multierr error rather than letting one bad event abort the
// drain.
func (q *Queue) Drain() error {
	var errs error
	for {
		env, ok := q.TryPop()
		if !ok {
			return errs
		}
		if err := q.runOne(env); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
}

func (q *Queue) runOne(env Envelope) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if q.log != nil {
				q.log.Error("events: recovered panic executing deferred event",
					log.String("trace_id", env.ID.String()))
			}
			err = &PanicError{TraceID: env.ID, Recovered: r}
		}
	}()
	env.Item.Execute()
	return nil
}

// Len reports the number of envelopes currently pending. It is a
// snapshot: concurrent producers/consumers may change it immediately
// after the call returns.
func (q *Queue) Len() int { return len(q.ch) }
