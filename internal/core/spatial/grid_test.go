package spatial_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelecs/kestrel/internal/core/ecs"
	"github.com/kestrelecs/kestrel/internal/core/spatial"
)

func TestRegionIndexIsRowMajorNotDegenerate(t *testing.T) {
	r := spatial.Region{MinX: 2, MinY: 5, MaxX: 4, MaxY: 7}
	seen := map[int]bool{}
	for x := r.MinX; x <= r.MaxX; x++ {
		for y := r.MinY; y <= r.MaxY; y++ {
			idx := r.Index(x, y)
			require.False(t, seen[idx], "index %d reused for (%d,%d)", idx, x, y)
			seen[idx] = true
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, r.SizeX()*r.SizeY())
		}
	}
	require.Len(t, seen, r.SizeX()*r.SizeY())
}

func TestAddRemoveRoundTrip(t *testing.T) {
	g := spatial.NewGrid(4, 4, 8)
	region := spatial.Region{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}

	require.NoError(t, g.Add(ecs.EntityID(5), region))
	scratch := g.Iter(0, region, g.BorrowScratch()[:0])
	require.Equal(t, []ecs.EntityID{5}, scratch)

	g.Remove(ecs.EntityID(5), region)
	scratch = g.Iter(0, region, g.BorrowScratch()[:0])
	require.Empty(t, scratch)
}

func TestIteratorStrictlyIncreasingAndDeduped(t *testing.T) {
	g := spatial.NewGrid(3, 3, 8)
	big := spatial.Region{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}

	// Entity 10 spans every cell in the 3x3 region; entity 20 sits in
	// just the corner. Both should be emitted exactly once.
	require.NoError(t, g.Add(ecs.EntityID(10), big))
	require.NoError(t, g.Add(ecs.EntityID(20), spatial.Region{MinX: 2, MinY: 2, MaxX: 2, MaxY: 2}))

	out := g.Iter(0, big, g.BorrowScratch()[:0])
	require.Equal(t, []ecs.EntityID{10, 20}, out)
	for i := 1; i < len(out); i++ {
		require.Less(t, out[i-1], out[i])
	}
}

// TestOverlapIterationVisitsEachPairOnce reproduces the spec's scenario:
// nine entities placed on a 3x3 grid, one per cell, each covering its
// own cell plus its neighbors (a 3x3 neighborhood capped to the grid),
// giving every distinct pair of adjacent/identical cells an overlap.
// For every unordered pair (A,B) with A<B whose neighborhoods overlap,
// the pairwise callback fires exactly once.
func TestOverlapIterationVisitsEachPairOnce(t *testing.T) {
	// Every neighborhood covers the center cell, so it must hold all nine.
	g := spatial.NewGrid(3, 3, 9)
	ids := make([]ecs.EntityID, 9)
	regions := make([]spatial.Region, 9)

	for cy := 0; cy < 3; cy++ {
		for cx := 0; cx < 3; cx++ {
			i := cy*3 + cx
			id := ecs.EntityID(i + 1)
			ids[i] = id
			region := spatial.Region{
				MinX: max(0, cx-1), MinY: max(0, cy-1),
				MaxX: min(2, cx+1), MaxY: min(2, cy+1),
			}
			regions[i] = region
			require.NoError(t, g.Add(id, region))
		}
	}

	pairCounts := map[[2]ecs.EntityID]int{}
	for i, id := range ids {
		scratch := g.BorrowScratch()[:0]
		candidates := g.Iter(id, regions[i], scratch)
		for _, b := range candidates {
			pairCounts[[2]ecs.EntityID{id, b}]++
		}
		g.ReleaseScratch(candidates)
	}

	for pair, count := range pairCounts {
		require.Equal(t, 1, count, "pair %v visited %d times", pair, count)
		require.Less(t, pair[0], pair[1])
	}
	// All nine neighborhoods share the center cell, so every one of the
	// 9*8/2 unordered pairs overlaps and must have been visited.
	require.Len(t, pairCounts, 36)
}
