// Package features prepares raw device telemetry for density clustering.
package features

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// ErrInsufficientData indicates a batch too small to standardize
// (variance is undefined for fewer than two devices).
var ErrInsufficientData = errors.New("at least 2 telemetry records required")

// Standardize rescales each feature column to zero mean and unit variance
// so that no single feature dominates the Euclidean distances used by the
// cluster engine. Population (biased) standard deviation is used.
// Columns with zero spread are left centered but unscaled.
//
// The input is not modified; the result preserves row order.
func Standardize(vectors [][]float64) ([][]float64, error) {
	n := len(vectors)
	if n < 2 {
		return nil, ErrInsufficientData
	}
	dims := len(vectors[0])

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, dims)
	}

	col := make([]float64, n)
	for j := 0; j < dims; j++ {
		for i := 0; i < n; i++ {
			col[i] = vectors[i][j]
		}
		mean := stat.Mean(col, nil)
		std := stat.PopStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		for i := 0; i < n; i++ {
			out[i][j] = (vectors[i][j] - mean) / std
		}
	}
	return out, nil
}
