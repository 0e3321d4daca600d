package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelecs/kestrel/internal/core/ecs"
)

type t0 struct{ n int }
type t1 struct{ n int }
type t2 struct{ n int }
type t3 struct{ n int }

const tagE ecs.Tag = 1
const tagNotE ecs.Tag = 2

// buildSixteen tags every entity with an explicit, non-TagNone value so a
// WithTag(tagE) filter actually excludes the other half: TagNone matches
// any tag on either side of the comparison (it is the wildcard, not the
// absence of a tag), so leaving the other half at TagNone would make
// every entity match regardless of the filter's tag.
func buildSixteen(t *testing.T, m *ecs.Manager) []ecs.EntityHandle {
	t.Helper()
	handles := make([]ecs.EntityHandle, 16)
	for i := 0; i < 16; i++ {
		tag := tagNotE
		if i&8 != 0 {
			tag = tagE
		}
		h, err := m.AddEntity(tag, 0)
		require.NoError(t, err)
		if i&1 != 0 {
			require.NoError(t, ecs.AddComponent(m, h, t0{n: i}))
		}
		if i&2 != 0 {
			require.NoError(t, ecs.AddComponent(m, h, t1{n: i}))
		}
		if i&4 != 0 {
			require.NoError(t, ecs.AddComponent(m, h, t2{n: i}))
		}
		if i&8 != 0 {
			require.NoError(t, ecs.AddComponent(m, h, t3{n: i}))
		}
		handles[i] = h
	}
	return handles
}

func TestFilterCoverageTagWithOptional(t *testing.T) {
	m := ecs.NewManager(32)
	buildSixteen(t, m)

	visited := 0
	ecs.QueryOpt2[t0, t1](m, ecs.NewFilter().WithTag(tagE), func(h ecs.EntityHandle, a ecs.Opt[t0], b ecs.Opt[t1]) {
		visited++
		mask, _ := m.ComponentMask(h)
		idT0 := ecs.ComponentIDOf[t0](m)
		idT1 := ecs.ComponentIDOf[t1](m)
		require.Equal(t, mask.Test(idT0), a.Ok)
		require.Equal(t, mask.Test(idT1), b.Ok)
	})
	require.Equal(t, 8, visited)
}

func TestFilterCoverageMandatoryWithOptional(t *testing.T) {
	m := ecs.NewManager(32)
	buildSixteen(t, m)

	idT1 := ecs.ComponentIDOf[t1](m)
	visited := 0
	ecs.Query1Opt1[t0, t1](m, ecs.NewFilter().With(idT1), func(h ecs.EntityHandle, a *t0, b ecs.Opt[t1]) {
		visited++
		require.True(t, b.Ok)
	})
	require.Equal(t, 4, visited)
}

func TestFilterCoverageMandatoryPair(t *testing.T) {
	m := ecs.NewManager(32)
	buildSixteen(t, m)

	visited := 0
	ecs.Query2[t0, t1](m, ecs.TagNone, func(h ecs.EntityHandle, a *t0, b *t1) {
		visited++
	})
	require.Equal(t, 4, visited)
}

func TestFilterCoverageAllFour(t *testing.T) {
	m := ecs.NewManager(32)
	buildSixteen(t, m)

	visited := 0
	var seen int
	ecs.Query4[t0, t1, t2, t3](m, ecs.TagNone, func(h ecs.EntityHandle, a *t0, b *t1, c *t2, d *t3) {
		visited++
		seen = a.n
	})
	require.Equal(t, 1, visited)
	require.Equal(t, 15, seen)
}

func TestTagScopedIteration(t *testing.T) {
	const tagX ecs.Tag = 2
	const tagY ecs.Tag = 3
	m := ecs.NewManager(32)
	for i := 0; i < 10; i++ {
		tag := tagX
		if i%2 == 1 {
			tag = tagY
		}
		_, err := m.AddEntity(tag, 0)
		require.NoError(t, err)
	}

	visited := 0
	m.IterateEntities(ecs.NewFilter().WithTag(tagX), func(h ecs.EntityHandle) bool {
		visited++
		tag, ok := m.Tag(h)
		require.True(t, ok)
		require.Equal(t, tagX, tag)
		return true
	})
	require.Equal(t, 5, visited)
}
