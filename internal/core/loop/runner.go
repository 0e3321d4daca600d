// Package loop implements the per-frame glue between the manager, the
// scheduler, the spatial/event subsystems, and whatever render
// collaborator the host embeds kestrel in.
package loop

import (
	"runtime"
	"time"

	"github.com/kestrelecs/kestrel/internal/core/ecs"
	"github.com/kestrelecs/kestrel/internal/core/events"
	"github.com/kestrelecs/kestrel/internal/core/observability/log"
	"github.com/kestrelecs/kestrel/internal/core/scheduler"
)

// HostEvents polls whatever external event source the embedding host
// uses (windowing, input) once per frame. Poll returns true if the host
// has requested shutdown.
type HostEvents interface {
	Poll() (closeRequested bool)
}

// Runner drives the ten-step per-frame sequence: poll host events,
// acquire the manager token, enqueue the frame's tasks, cooperatively
// drain them from the calling goroutine, wait for the render
// collaborator's sync gate, busy-yield until the scheduler is fully
// drained, reset completed nodes, release the token, drain deferred
// events, and record the frame's duration.
type Runner struct {
	Manager   *ecs.Manager
	Scheduler *scheduler.Scheduler
	Events    *events.Queue
	Host      HostEvents

	// RenderSyncGate is waited on at step 5, opened by the render
	// collaborator once it has drawn the previous frame.
	RenderSyncGate *scheduler.Gate

	log            log.Log
	closeRequested bool
	lastFrame      time.Duration
}

// New builds a Runner. host and renderSync may be nil for a headless
// runner that never blocks on step 5.
func New(m *ecs.Manager, s *scheduler.Scheduler, q *events.Queue, host HostEvents, renderSync *scheduler.Gate, logger log.Log) *Runner {
	return &Runner{Manager: m, Scheduler: s, Events: q, Host: host, RenderSyncGate: renderSync, log: logger}
}

// CloseRequested reports whether a prior frame's host poll asked for
// shutdown.
func (r *Runner) CloseRequested() bool { return r.closeRequested }

// LastFrameDuration returns the wall-clock duration of the most recently
// completed RunFrame call.
func (r *Runner) LastFrameDuration() time.Duration { return r.lastFrame }

// RunFrame executes one frame. enqueueFrameTasks is called with the
// manager token held (step 3) and is expected to call
// scheduler.CallAsync*/CallAsyncOverlap* to populate the FIFO; its
// composition (which tasks, which dependencies) is the caller's domain
// logic, not the runner's.
func (r *Runner) RunFrame(enqueueFrameTasks func() error) error {
	start := time.Now()

	if r.Host != nil && r.Host.Poll() {
		r.closeRequested = true
	}

	r.Manager.Lock()
	if err := enqueueFrameTasks(); err != nil {
		r.Manager.Unlock()
		return err
	}

	r.Scheduler.WorkFromMainThread(true)

	if r.RenderSyncGate != nil {
		r.RenderSyncGate.Wait()
	}

	for r.Scheduler.AnyWorkerBusy() || r.Scheduler.Pending() > 0 {
		runtime.Gosched()
	}

	r.Scheduler.ResetCompletedNodes()
	r.Manager.Unlock()

	if err := r.Events.Drain(); err != nil && r.log != nil {
		r.log.Error("loop: deferred event drain reported errors", log.Error(err))
	}

	r.lastFrame = time.Since(start)
	if r.log != nil {
		r.log.Debug("loop: frame complete", log.Duration("duration", r.lastFrame))
	}
	return nil
}
