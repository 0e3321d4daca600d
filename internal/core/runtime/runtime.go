// Package runtime bundles the manager, scheduler, event queue, spatial
// grid, and frame runner into the single object a host process
// constructs once at startup. It exists mainly so internal/injector has
// one concrete type to build.
package runtime

import (
	"github.com/kestrelecs/kestrel/internal/core/config"
	"github.com/kestrelecs/kestrel/internal/core/ecs"
	"github.com/kestrelecs/kestrel/internal/core/events"
	"github.com/kestrelecs/kestrel/internal/core/loop"
	"github.com/kestrelecs/kestrel/internal/core/observability/log"
	"github.com/kestrelecs/kestrel/internal/core/scheduler"
	"github.com/kestrelecs/kestrel/internal/core/spatial"
)

// Runtime is the fully wired set of subsystems a host drives one
// RunFrame at a time.
type Runtime struct {
	Config    config.Config
	Log       log.Log
	Manager   *ecs.Manager
	Scheduler *scheduler.Scheduler
	Events    *events.Queue
	Grid      *spatial.Grid
	Runner    *loop.Runner
}

// New constructs every subsystem from cfg and wires the runner to the
// manager, scheduler and event queue. It does not start the scheduler's
// workers.
func New(cfg config.Config, logger log.Log, host loop.HostEvents, renderSync *scheduler.Gate) *Runtime {
	m := ecs.NewManager(cfg.MaxEntities)
	s := scheduler.New(cfg.MaxWorkers, cfg.MaxPendingTasks, logger)
	q := events.New(cfg.EventQueueSize, logger)
	grid := spatial.NewGrid(cfg.GridColumns, cfg.GridRows, cfg.MaxPerCell)
	runner := loop.New(m, s, q, host, renderSync, logger)

	return &Runtime{
		Config:    cfg,
		Log:       logger,
		Manager:   m,
		Scheduler: s,
		Events:    q,
		Grid:      grid,
		Runner:    runner,
	}
}
