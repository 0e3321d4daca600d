package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelecs/kestrel/internal/core/ecs"
)

func TestComponentIDSetOps(t *testing.T) {
	a := ecs.NewComponentIDSet(1, 2, 65)
	b := ecs.NewComponentIDSet(2, 3)

	require.True(t, a.Test(1))
	require.False(t, a.Test(3))
	require.False(t, a.None())
	require.True(t, ecs.ComponentIDSet{}.None())

	require.True(t, a.Overlaps(b))
	require.False(t, ecs.NewComponentIDSet(10).Overlaps(ecs.NewComponentIDSet(11)))

	union := a.Union(b)
	require.True(t, union.Test(1))
	require.True(t, union.Test(3))
	require.True(t, union.Test(65))

	inter := a.Intersect(b)
	require.True(t, inter.Test(2))
	require.False(t, inter.Test(1))
	require.False(t, inter.Test(3))

	require.True(t, inter.IsSubsetOf(a))
	require.True(t, inter.IsSubsetOf(b))
	require.False(t, a.IsSubsetOf(b))

	a.Clear(1)
	require.False(t, a.Test(1))
	require.Equal(t, 2, a.Count())
}
