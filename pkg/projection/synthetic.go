package projection

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Generator fabricates visualization-only points by sampling Gaussian
// noise around a cohort centroid in feature space and projecting the
// noised vectors through the fitted linear map.
type Generator struct {
	normal distuv.Normal
}

// NewGenerator creates a generator with the given noise scale. A zero
// seed draws one from the clock; tests pass a fixed seed for
// reproducible output.
func NewGenerator(sigma float64, seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		normal: distuv.Normal{Mu: 0, Sigma: sigma, Src: rand.NewSource(seed)},
	}
}

// Around samples count noised copies of centroid and returns their 2-D
// projections.
func (g *Generator) Around(centroid []float64, count int, p *PCA) [][2]float64 {
	pts := make([][2]float64, count)
	noised := make([]float64, len(centroid))
	for i := range pts {
		for j, c := range centroid {
			noised[j] = c + g.normal.Rand()
		}
		x, y := p.Project(noised)
		pts[i] = [2]float64{x, y}
	}
	return pts
}

// Centroid returns the per-dimension mean of the given member vectors.
func Centroid(members [][]float64) []float64 {
	if len(members) == 0 {
		return nil
	}
	dims := len(members[0])
	c := make([]float64, dims)
	for _, v := range members {
		for j := 0; j < dims; j++ {
			c[j] += v[j]
		}
	}
	for j := 0; j < dims; j++ {
		c[j] /= float64(len(members))
	}
	return c
}

// FillShares splits fill points across cohorts in proportion to each
// cohort's share of the real device population. Shares are rounded per
// cohort, so the total may over- or under-shoot fill by a small amount;
// that is accepted rather than corrected.
func FillShares(sizes []int, realCount, fill int) []int {
	shares := make([]int, len(sizes))
	if realCount == 0 || fill <= 0 {
		return shares
	}
	for i, s := range sizes {
		shares[i] = int(math.Round(float64(fill) * float64(s) / float64(realCount)))
	}
	return shares
}
