package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kestrelecs/kestrel/internal/core/ecs"
	"github.com/kestrelecs/kestrel/internal/core/observability/log"
	"github.com/kestrelecs/kestrel/internal/core/scheduler"
	"github.com/kestrelecs/kestrel/internal/core/spatial"
	"github.com/kestrelecs/kestrel/internal/injector"
)

type position struct{ x, y float32 }
type velocity struct{ dx, dy float32 }

// cell tracks which grid region an entity is currently registered under,
// so the per-frame regrid pass can move its grid membership instead
// of re-adding it from scratch.
type cell struct{ region spatial.Region }

func regionFor(grid *spatial.Grid, p *position) spatial.Region {
	rx, ry := grid.Dims()
	x := clamp(int(p.x), 0, rx-1)
	y := clamp(int(p.y), 0, ry-1)
	return spatial.Region{MinX: x, MinY: y, MaxX: x, MaxY: y}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// headlessHost stands in for a windowing collaborator: it never asks for
// shutdown on its own, relying entirely on the process signal below.
type headlessHost struct{}

func (headlessHost) Poll() bool { return false }

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	renderSync := scheduler.NewGate()
	rt := injector.ProvideRuntime(headlessHost{}, renderSync)
	logger := rt.Log

	for i := 0; i < 8; i++ {
		h, err := rt.Manager.AddEntity(ecs.TagNone, 0)
		if err != nil {
			logger.Error("demo: failed to add entity", log.Error(err))
			os.Exit(1)
		}
		p := position{x: float32(i), y: 0}
		_ = ecs.AddComponent(rt.Manager, h, p)
		_ = ecs.AddComponent(rt.Manager, h, velocity{dx: 1, dy: 0})
		region := regionFor(rt.Grid, &p)
		if err := rt.Grid.Add(h.ID, region); err != nil {
			logger.Error("demo: failed to register entity in grid", log.Error(err))
			os.Exit(1)
		}
		_ = ecs.AddComponent(rt.Manager, h, cell{region: region})
	}

	const (
		moveNode   scheduler.ExecutionNodeID = 0
		regridNode scheduler.ExecutionNodeID = 1
	)

	rt.Scheduler.StartWorkers(ctx)
	defer func() {
		if err := rt.Scheduler.StopWorkers(); err != nil {
			logger.Error("demo: error stopping workers", log.Error(err))
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM)

	frame := 0
	collisions := 0
	for {
		select {
		case <-stopCh:
			cancel()
			return
		default:
		}

		renderSync.Open() // no render collaborator in the demo; RunFrame's wait on this gate returns at once
		err := rt.Runner.RunFrame(func() error {
			if err := scheduler.CallAsync2[position, velocity](
				rt.Scheduler, rt.Manager, ecs.TagNone, true, false,
				func(_ ecs.EntityHandle, p *position, v *velocity) {
					p.x += v.dx
					p.y += v.dy
				},
				scheduler.WithNode(moveNode),
			); err != nil {
				return err
			}

			if err := scheduler.CallAsync2[position, cell](
				rt.Scheduler, rt.Manager, ecs.TagNone, false, true,
				func(h ecs.EntityHandle, p *position, c *cell) {
					next := regionFor(rt.Grid, p)
					if next != c.region {
						rt.Grid.Remove(h.ID, c.region)
						_ = rt.Grid.Add(h.ID, next)
						c.region = next
					}
				},
				scheduler.WithNode(regridNode), scheduler.WithRequires(moveNode),
			); err != nil {
				return err
			}

			return scheduler.CallAsyncOverlap1x1[position, position, spatial.RegionHolder](
				rt.Scheduler, rt.Manager, ecs.TagNone, ecs.TagNone, false, false,
				func(h ecs.EntityHandle, p *position) spatial.RegionHolder {
					return spatial.NewRegionHolder(rt.Grid, regionFor(rt.Grid, p), h.ID)
				},
				func(_ *spatial.RegionHolder, _ ecs.EntityHandle, _ *position) {
					collisions++
				},
				scheduler.WithRequires(regridNode),
			)
		})
		if err != nil {
			logger.Error("demo: frame failed", log.Error(err))
			return
		}
		if rt.Runner.CloseRequested() {
			return
		}

		frame++
		if frame%60 == 0 {
			fmt.Printf("frame %d, last duration %s, collisions in last 60 frames %d\n", frame, rt.Runner.LastFrameDuration(), collisions)
			collisions = 0
		}
		if frame >= 600 {
			return
		}
	}
}
