package cluster

import "math"

// Tuned holds the labeling kept by the radius search.
type Tuned struct {
	Eps      float64
	Labels   []int
	Clusters int // non-noise cluster count at Eps
}

// TuneEps sweeps candidate radii in ascending order, partitions at each,
// and keeps the radius whose cohort count is closest to target. The
// comparison is strict-less, so on equal diffs the first (smallest)
// candidate wins, and the sweep stops as soon as a candidate matches the
// target exactly. Fleet sizes and feature spreads vary per request, which
// is why a fixed radius over- or under-clusters at different scales.
func (e *Engine) TuneEps(points [][]float64, epsMin, epsMax, epsStep float64, target int) Tuned {
	var best Tuned
	bestDiff := math.MaxInt

	// Small tolerance keeps the top of the range inclusive despite
	// floating-point accumulation.
	for eps := epsMin; eps <= epsMax+epsStep/2; eps += epsStep {
		labels := e.Partition(points, eps)
		count := CountClusters(labels)
		diff := count - target
		if diff < 0 {
			diff = -diff
		}
		if diff < bestDiff {
			best = Tuned{Eps: eps, Labels: labels, Clusters: count}
			bestDiff = diff
		}
		if diff == 0 {
			break
		}
	}
	return best
}
