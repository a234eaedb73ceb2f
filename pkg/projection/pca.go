// Package projection flattens the 4-D telemetry feature space to 2-D for
// the fleet scatter plot and fabricates filler points for sparse fleets.
package projection

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrDegenerateMatrix indicates the feature matrix cannot support a
// principal-component decomposition.
var ErrDegenerateMatrix = errors.New("feature matrix too small for projection")

// PCA is a fitted 2-component principal projection. The same fitted
// instance projects both real devices and synthetic filler points, which
// keeps synthetic dots visually attached to their source cohort.
type PCA struct {
	dims       int
	components *mat.Dense // dims x 2, columns ordered by explained variance
}

// FitPCA fits the projection on the standardized feature matrix used for
// clustering, so plot distances roughly preserve clustering distances.
// The decomposition's sign is arbitrary; each component is flipped so its
// largest-magnitude loading is positive, making repeated runs identical.
func FitPCA(vectors [][]float64) (*PCA, error) {
	n := len(vectors)
	if n < 2 || len(vectors[0]) == 0 {
		return nil, ErrDegenerateMatrix
	}
	dims := len(vectors[0])

	m := mat.NewDense(n, dims, nil)
	for i, row := range vectors {
		m.SetRow(i, row)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(m, nil); !ok {
		return nil, ErrDegenerateMatrix
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	_, k := vecs.Dims()

	components := mat.NewDense(dims, 2, nil)
	for c := 0; c < 2 && c < k; c++ {
		col := mat.Col(nil, c, &vecs)

		// Deterministic sign convention.
		maxIdx := 0
		for j := range col {
			if math.Abs(col[j]) > math.Abs(col[maxIdx]) {
				maxIdx = j
			}
		}
		if col[maxIdx] < 0 {
			for j := range col {
				col[j] = -col[j]
			}
		}
		components.SetCol(c, col)
	}

	return &PCA{dims: dims, components: components}, nil
}

// Project maps one feature-space vector to plot coordinates.
func (p *PCA) Project(v []float64) (x, y float64) {
	for j := 0; j < p.dims; j++ {
		x += v[j] * p.components.At(j, 0)
		y += v[j] * p.components.At(j, 1)
	}
	return x, y
}
