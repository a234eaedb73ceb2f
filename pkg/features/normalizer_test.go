package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardize_ZeroMeanUnitVariance(t *testing.T) {
	vectors := [][]float64{
		{0.9, 80, 70, 50},
		{0.1, 10, 10, 5},
		{0.5, 45, 40, 27.5},
	}

	scaled, err := Standardize(vectors)
	require.NoError(t, err)
	require.Len(t, scaled, 3)

	for j := 0; j < 4; j++ {
		var mean, variance float64
		for i := range scaled {
			mean += scaled[i][j]
		}
		mean /= 3
		for i := range scaled {
			variance += (scaled[i][j] - mean) * (scaled[i][j] - mean)
		}
		variance /= 3

		assert.InDelta(t, 0, mean, 1e-9, "column %d mean", j)
		assert.InDelta(t, 1, variance, 1e-9, "column %d variance", j)
	}
}

func TestStandardize_InsufficientData(t *testing.T) {
	_, err := Standardize([][]float64{{0.5, 10, 10, 10}})
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = Standardize(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestStandardize_ConstantColumn(t *testing.T) {
	vectors := [][]float64{
		{1, 5, 3, 7},
		{1, 6, 3, 9},
	}

	scaled, err := Standardize(vectors)
	require.NoError(t, err)

	// Zero-spread columns are centered but not scaled, so no NaN or Inf.
	for i := range scaled {
		for j := range scaled[i] {
			assert.False(t, math.IsNaN(scaled[i][j]))
			assert.False(t, math.IsInf(scaled[i][j], 0))
		}
		assert.Equal(t, 0.0, scaled[i][0])
		assert.Equal(t, 0.0, scaled[i][2])
	}
}

func TestStandardize_InputUntouched(t *testing.T) {
	vectors := [][]float64{
		{0.9, 80, 70, 50},
		{0.1, 10, 10, 5},
	}

	_, err := Standardize(vectors)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{0.9, 80, 70, 50}, {0.1, 10, 10, 5}}, vectors)
}

func TestStandardize_Deterministic(t *testing.T) {
	vectors := [][]float64{
		{0.2, 30, 25, 12},
		{0.7, 65, 55, 40},
		{0.4, 50, 45, 22},
	}

	first, err := Standardize(vectors)
	require.NoError(t, err)
	second, err := Standardize(vectors)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
