// Package cluster groups devices with similar usage patterns into update
// cohorts using density-based clustering over standardized telemetry.
package cluster

import (
	"gonum.org/v1/gonum/floats"
)

const (
	// Noise labels a device with no sufficiently dense neighborhood.
	// Noise devices are plotted but never scheduled.
	Noise = -1

	unclassified = -2
)

// Engine partitions feature vectors by density reachability: two points
// share a cohort when connected by a chain of points that each have at
// least MinSamples neighbors (self included) within radius eps.
type Engine struct {
	MinSamples int
}

// NewEngine creates an engine with the given density threshold.
func NewEngine(minSamples int) *Engine {
	if minSamples < 1 {
		minSamples = 1
	}
	return &Engine{MinSamples: minSamples}
}

// Partition labels every point with a cluster index starting at 0, or
// Noise. Labels are parallel to points. Label values carry no ordering
// semantics beyond identity within one call.
func (e *Engine) Partition(points [][]float64, eps float64) []int {
	n := len(points)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = unclassified
	}

	next := 0
	for i := 0; i < n; i++ {
		if labels[i] != unclassified {
			continue
		}
		neighbors := e.regionQuery(points, i, eps)
		if len(neighbors) < e.MinSamples {
			labels[i] = Noise
			continue
		}

		labels[i] = next
		// Breadth-first expansion over density-reachable points.
		queue := append([]int(nil), neighbors...)
		for k := 0; k < len(queue); k++ {
			j := queue[k]
			if labels[j] == Noise {
				// Border point adopted by the cluster.
				labels[j] = next
				continue
			}
			if labels[j] != unclassified {
				continue
			}
			labels[j] = next
			reach := e.regionQuery(points, j, eps)
			if len(reach) >= e.MinSamples {
				queue = append(queue, reach...)
			}
		}
		next++
	}
	return labels
}

// regionQuery returns the indices of all points within eps of points[i],
// including i itself. Brute force is fine at fleet scale.
func (e *Engine) regionQuery(points [][]float64, i int, eps float64) []int {
	var neighbors []int
	for j := range points {
		if floats.Distance(points[i], points[j], 2) <= eps {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

// CountClusters returns the number of distinct non-noise labels.
func CountClusters(labels []int) int {
	seen := make(map[int]struct{})
	for _, l := range labels {
		if l != Noise {
			seen[l] = struct{}{}
		}
	}
	return len(seen)
}
