package pca

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func sampleMatrix() *mat.Dense {
	return mat.NewDense(6, 5, []float64{
		0.3, 1.7, 2.2, 0.1, 1.4,
		1.1, 0.9, 0.2, 2.6, 2.3,
		2.8, 0.4, 1.3, 1.2, 0.05,
		0.15, 2.1, 2.9, 0.7, 1.1,
		1.6, 0.25, 0.6, 0.35, 2.7,
		2.2, 2.4, 1.5, 1.9, 0.5,
	})
}

func TestReduceShape(t *testing.T) {
	out, m, err := Reduce(sampleMatrix(), DefaultComponents)
	require.NoError(t, err)
	r, c := out.Dims()
	assert.Equal(t, 6, r)
	assert.Equal(t, 4, c)
	assert.False(t, m.Truncated())
	require.Len(t, m.Ratio, 4)
	for i := 1; i < len(m.Variance); i++ {
		assert.GreaterOrEqual(t, m.Variance[i-1], m.Variance[i], "variances must be descending")
	}
}

func TestReducePreservesRowCorrespondence(t *testing.T) {
	x := sampleMatrix()
	out, _, err := Reduce(x, 4)
	require.NoError(t, err)

	// Reversing the input rows must reverse the output rows: the fit does
	// not depend on row order.
	n, d := x.Dims()
	rev := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		rev.SetRow(i, mat.Row(nil, n-1-i, x))
	}
	outRev, _, err := Reduce(rev, 4)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		assert.InDeltaSlice(t, mat.Row(nil, i, out), mat.Row(nil, n-1-i, outRev), 1e-9, "row %d", i)
	}
}

func TestReduceDeterministic(t *testing.T) {
	a, _, err := Reduce(sampleMatrix(), 4)
	require.NoError(t, err)
	b, _, err := Reduce(sampleMatrix(), 4)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(a, b, 1e-12))
}

func TestReduceLine(t *testing.T) {
	// Points on y = 2x: one component explains everything and the scores
	// are the signed distances from the mean along the line.
	x := mat.NewDense(4, 2, []float64{
		0, 0,
		1, 2,
		2, 4,
		3, 6,
	})
	out, m, err := Reduce(x, 4)
	require.NoError(t, err)
	assert.True(t, m.Truncated())
	assert.Equal(t, 2, m.Components())
	assert.InDelta(t, 1.0, m.Ratio[0], 1e-9)

	step := math.Sqrt(5)
	want := []float64{-1.5 * step, -0.5 * step, 0.5 * step, 1.5 * step}
	for i, w := range want {
		assert.InDelta(t, w, out.At(i, 0), 1e-9)
		assert.InDelta(t, 0, out.At(i, 1), 1e-9)
	}
	// Largest loading is positive after sign normalization.
	assert.Greater(t, m.Axes.At(1, 0), 0.0)
}

func TestReduceCentersScores(t *testing.T) {
	out, _, err := Reduce(sampleMatrix(), 4)
	require.NoError(t, err)
	r, c := out.Dims()
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += out.At(i, j)
		}
		assert.InDelta(t, 0, sum, 1e-9, "component %d", j)
	}
}

func TestFitErrors(t *testing.T) {
	_, err := Fit(sampleMatrix(), 0)
	require.Error(t, err)

	_, err = Fit(&mat.Dense{}, 4)
	require.ErrorIs(t, err, ErrEmpty)
}

func TestTransformColumnMismatch(t *testing.T) {
	m, err := Fit(sampleMatrix(), 2)
	require.NoError(t, err)
	_, err = m.Transform(mat.NewDense(2, 3, nil))
	require.Error(t, err)
}
