package scheduler_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kestrelecs/kestrel/internal/core/ecs"
	"github.com/kestrelecs/kestrel/internal/core/scheduler"
)

func filterOf(ids ...ecs.ComponentID) scheduler.TaskFilter {
	return scheduler.TaskFilter{Mutable: ecs.NewComponentIDSet(ids...), Tag: ecs.TagNone}
}

func TestDisjointTasksRunConcurrently(t *testing.T) {
	s := scheduler.New(2, 8, nil)

	aStarted := make(chan struct{})
	aRelease := make(chan struct{})
	bStarted := make(chan struct{})

	taskA := scheduler.NewTask(func() {
		close(aStarted)
		<-aRelease
	}, filterOf(0, 1))
	taskB := scheduler.NewTask(func() {
		close(bStarted)
	}, filterOf(2, 3))

	require.NoError(t, s.Enqueue(taskA))
	require.NoError(t, s.Enqueue(taskB))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartWorkers(ctx)
	defer func() { close(aRelease); _ = s.StopWorkers() }()

	select {
	case <-aStarted:
	case <-time.After(time.Second):
		t.Fatal("task A never started")
	}
	select {
	case <-bStarted:
	case <-time.After(time.Second):
		t.Fatal("task B never started while A was still running: tasks did not run concurrently")
	}
}

func TestConflictingTasksRunSequentially(t *testing.T) {
	s := scheduler.New(2, 8, nil)

	aStarted := make(chan struct{})
	aRelease := make(chan struct{})
	bStarted := make(chan struct{})

	filter := filterOf(5, 6)
	taskA := scheduler.NewTask(func() {
		close(aStarted)
		<-aRelease
	}, filter)
	taskB := scheduler.NewTask(func() {
		close(bStarted)
	}, filter)

	require.NoError(t, s.Enqueue(taskA))
	require.NoError(t, s.Enqueue(taskB))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartWorkers(ctx)
	defer func() { _ = s.StopWorkers() }()

	select {
	case <-aStarted:
	case <-time.After(time.Second):
		t.Fatal("task A never started")
	}

	select {
	case <-bStarted:
		t.Fatal("task B started while conflicting task A was still running")
	case <-time.After(50 * time.Millisecond):
	}

	close(aRelease)

	select {
	case <-bStarted:
	case <-time.After(time.Second):
		t.Fatal("task B never started after task A completed")
	}
}

func TestDependencyOrderingRespected(t *testing.T) {
	s := scheduler.New(2, 8, nil)

	var mu sync.Mutex
	var order []string
	record := func(name string) {
		mu.Lock()
		order = append(order, name)
		mu.Unlock()
	}

	taskA := scheduler.NewTask(func() { record("A") }, filterOf(0)).WithNode(1)
	taskB := scheduler.NewTask(func() { record("B") }, filterOf(1)).WithNode(2).WithRequires(1)

	// Enqueue B before A: FIFO order alone must not let B run first,
	// since its dependency is not yet satisfied.
	require.NoError(t, s.Enqueue(taskB))
	require.NoError(t, s.Enqueue(taskA))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartWorkers(ctx)
	defer func() { _ = s.StopWorkers() }()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(order) == 2
	}, time.Second, time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"A", "B"}, order)
}

func TestEnqueueRejectsInvalidNode(t *testing.T) {
	s := scheduler.New(1, 4, nil)
	task := scheduler.NewTask(func() {}, filterOf(0)).WithNode(scheduler.MaxNodes)
	require.ErrorIs(t, s.Enqueue(task), scheduler.ErrInvalidNode)
}

func TestEnqueueRejectsOverCapacity(t *testing.T) {
	s := scheduler.New(1, 1, nil)
	require.NoError(t, s.Enqueue(scheduler.NewTask(func() {}, filterOf(0))))
	require.ErrorIs(t, s.Enqueue(scheduler.NewTask(func() {}, filterOf(1))), scheduler.ErrCapacity)
}
