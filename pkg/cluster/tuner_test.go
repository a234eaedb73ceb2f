package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuneEps_StopsOnExactMatch(t *testing.T) {
	// Two tight groups far apart: every radius in range yields exactly two
	// clusters, so the sweep matches target 2 at the first candidate and
	// keeps the smallest radius.
	points := [][]float64{
		{0, 0, 0, 0},
		{0.05, 0, 0, 0},
		{10, 10, 10, 10},
		{10.05, 10, 10, 10},
	}

	tuned := NewEngine(1).TuneEps(points, 0.4, 2.0, 0.1, 2)
	assert.InDelta(t, 0.4, tuned.Eps, 1e-9)
	assert.Equal(t, 2, tuned.Clusters)
	require.Len(t, tuned.Labels, 4)
}

func TestTuneEps_TieKeepsSmallestRadius(t *testing.T) {
	// Two points 4+ apart after scaling: unreachable at any radius in the
	// sweep, so every candidate yields two singleton clusters. With target
	// 6 the diff is constant and the first candidate must win.
	points := [][]float64{
		{-1, -1, -1, -1},
		{1, 1, 1, 1},
	}

	tuned := NewEngine(1).TuneEps(points, 0.4, 2.0, 0.1, 6)
	assert.InDelta(t, 0.4, tuned.Eps, 1e-9)
	assert.Equal(t, 2, tuned.Clusters)
}

func TestTuneEps_PrefersCloserCount(t *testing.T) {
	// Three groups with inter-group spacing 1.5: radii below 1.5 see three
	// clusters, radii at or above merge them into one. Target 1 should pick
	// the first merging radius.
	points := [][]float64{
		{0, 0},
		{1.5, 0},
		{3.0, 0},
	}

	tuned := NewEngine(1).TuneEps(points, 0.4, 2.0, 0.1, 1)
	assert.Equal(t, 1, tuned.Clusters)
	assert.InDelta(t, 1.5, tuned.Eps, 0.11)
}

func TestTuneEps_RangeTopInclusive(t *testing.T) {
	// Mergeable only at the very top of the range. 0.4 + 16*0.1 lands on
	// 2.0 through float accumulation; the tolerance keeps it in the sweep.
	points := [][]float64{
		{0, 0},
		{1.99, 0},
	}

	tuned := NewEngine(1).TuneEps(points, 0.4, 2.0, 0.1, 1)
	assert.Equal(t, 1, tuned.Clusters)
}
