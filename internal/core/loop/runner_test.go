package loop_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kestrelecs/kestrel/internal/core/ecs"
	"github.com/kestrelecs/kestrel/internal/core/events"
	"github.com/kestrelecs/kestrel/internal/core/loop"
	"github.com/kestrelecs/kestrel/internal/core/scheduler"
)

type position struct{ x, y float32 }

type fakeHost struct{ closeOnFrame int; frame int }

func (h *fakeHost) Poll() bool {
	h.frame++
	return h.frame >= h.closeOnFrame
}

type deferredEvent struct{ ran *bool }

func (e deferredEvent) Execute() { *e.ran = true }

func TestRunFrameDrainsTasksAndEvents(t *testing.T) {
	m := ecs.NewManager(16)
	h, err := m.AddEntity(ecs.TagNone, 0)
	require.NoError(t, err)
	require.NoError(t, ecs.AddComponent(m, h, position{x: 1, y: 1}))

	s := scheduler.New(2, 8, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartWorkers(ctx)
	defer func() { _ = s.StopWorkers() }()

	q := events.New(4, nil)
	host := &fakeHost{closeOnFrame: 2}
	renderSync := scheduler.NewGate()
	renderSync.Open()

	r := loop.New(m, s, q, host, renderSync, nil)

	var moved bool
	var eventRan bool
	require.NoError(t, q.Push(deferredEvent{ran: &eventRan}))

	err = r.RunFrame(func() error {
		return scheduler.CallAsync1[position](s, m, ecs.TagNone, true, func(_ ecs.EntityHandle, p *position) {
			p.x++
			moved = true
		})
	})
	require.NoError(t, err)
	require.False(t, r.CloseRequested())
	require.True(t, moved)
	require.True(t, eventRan)

	renderSync.Open()
	require.NoError(t, r.RunFrame(func() error { return nil }))
	require.True(t, r.CloseRequested())
	require.Greater(t, r.LastFrameDuration(), time.Duration(0))
}
