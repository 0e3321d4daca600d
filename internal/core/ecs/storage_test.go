package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelecs/kestrel/internal/core/ecs"
)

type velocity struct{ dx, dy float32 }

func TestSortedStrategyKeepsAscendingOrder(t *testing.T) {
	m := ecs.NewManager(64)
	ecs.RegisterComponent[velocity](m, ecs.Sorted)

	order := []ecs.EntityID{40, 5, 20, 1, 63}
	for _, idx := range order {
		h, err := m.AddEntity(ecs.TagNone, idx)
		require.NoError(t, err)
		require.Equal(t, idx, h.ID)
		require.NoError(t, ecs.AddComponent(m, h, velocity{dx: float32(idx)}))
	}

	var seen []ecs.EntityID
	ecs.Query1[velocity](m, ecs.TagNone, func(h ecs.EntityHandle, v *velocity) {
		seen = append(seen, h.ID)
	})

	for i := 1; i < len(seen); i++ {
		require.Less(t, seen[i-1], seen[i])
	}
	require.Len(t, seen, len(order))
}

func TestLastAllocatedEntityIsReachedByScan(t *testing.T) {
	// Regression test for the off-by-one that excluded maxAllocatedIndex
	// from the scan bound: allocating exactly up to capacity and
	// querying must still observe the final entity.
	m := ecs.NewManager(4)
	var last ecs.EntityHandle
	for i := 0; i < 4; i++ {
		h, err := m.AddEntity(ecs.TagNone, 0)
		require.NoError(t, err)
		last = h
	}
	require.EqualValues(t, 3, last.ID)

	found := false
	m.IterateEntities(ecs.NewFilter(), func(h ecs.EntityHandle) bool {
		if h.ID == last.ID {
			found = true
		}
		return true
	})
	require.True(t, found)
}

func TestSparseStrategyRoundTrip(t *testing.T) {
	m := ecs.NewManager(16)
	ecs.RegisterComponent[velocity](m, ecs.Sparse)

	h, err := m.AddEntity(ecs.TagNone, 0)
	require.NoError(t, err)
	require.NoError(t, ecs.AddComponent(m, h, velocity{dx: 1, dy: 2}))
	v, err := ecs.GetComponent[velocity](m, h)
	require.NoError(t, err)
	require.Equal(t, float32(1), v.dx)

	require.NoError(t, ecs.RemoveComponent[velocity](m, h))
	require.False(t, ecs.HasComponent[velocity](m, h))
}
