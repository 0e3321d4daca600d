package events_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelecs/kestrel/internal/core/events"
)

type countingEvent struct{ fn func() }

func (c countingEvent) Execute() { c.fn() }

func TestPushTryPopOrder(t *testing.T) {
	q := events.New(4, nil)
	var order []int
	for i := 0; i < 3; i++ {
		i := i
		require.NoError(t, q.Push(countingEvent{fn: func() { order = append(order, i) }}))
	}

	for i := 0; i < 3; i++ {
		env, ok := q.TryPop()
		require.True(t, ok)
		env.Item.Execute()
	}
	_, ok := q.TryPop()
	require.False(t, ok)
	require.Equal(t, []int{0, 1, 2}, order)
}

func TestPushFailsAtCapacity(t *testing.T) {
	q := events.New(1, nil)
	require.NoError(t, q.Push(countingEvent{fn: func() {}}))
	require.ErrorIs(t, q.Push(countingEvent{fn: func() {}}), events.ErrCapacity)
}

func TestDrainExecutesAndRecoversPanics(t *testing.T) {
	q := events.New(4, nil)
	ran := 0
	require.NoError(t, q.Push(countingEvent{fn: func() { ran++ }}))
	require.NoError(t, q.Push(countingEvent{fn: func() { panic("boom") }}))
	require.NoError(t, q.Push(countingEvent{fn: func() { ran++ }}))

	err := q.Drain()
	require.Error(t, err)
	require.Equal(t, 2, ran)
	require.Equal(t, 0, q.Len())
}
