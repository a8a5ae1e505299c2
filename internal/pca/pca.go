// Package pca projects feature matrices onto their leading principal axes.
package pca

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultComponents is the rank used when none is configured.
const DefaultComponents = 4

// ErrEmpty is returned when the input matrix has no rows or no columns.
var ErrEmpty = errors.New("pca: empty input matrix")

// Model is a fitted PCA. Axes holds one unit-length direction per column.
type Model struct {
	Requested int
	Mean      []float64
	Axes      *mat.Dense
	// Variance and Ratio are the explained variance per component and its
	// share of the total variance. Both are nil for single-row input.
	Variance []float64
	Ratio    []float64
}

// Components is the number of axes actually kept, which is smaller than
// Requested when the input has fewer than Requested rows or columns.
func (m *Model) Components() int {
	_, c := m.Axes.Dims()
	return c
}

// Truncated reports whether fewer components were kept than requested.
func (m *Model) Truncated() bool { return m.Components() < m.Requested }

// Fit computes the principal axes of x, keeping at most k of them.
func Fit(x mat.Matrix, k int) (*Model, error) {
	if k < 1 {
		return nil, fmt.Errorf("pca: components must be positive, got %d", k)
	}
	n, d := x.Dims()
	if n == 0 || d == 0 {
		return nil, ErrEmpty
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(x, nil); !ok {
		return nil, errors.New("pca: singular value decomposition failed")
	}
	var vecs mat.Dense
	pc.VectorsTo(&vecs)
	_, avail := vecs.Dims()
	keep := k
	if keep > avail {
		keep = avail
	}
	axes := mat.DenseCopyOf(vecs.Slice(0, d, 0, keep))
	flipSigns(axes)

	mean := make([]float64, d)
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		mat.Col(col, j, x)
		mean[j] = stat.Mean(col, nil)
	}

	m := &Model{Requested: k, Mean: mean, Axes: axes}
	if n > 1 {
		vars := pc.VarsTo(nil)
		total := floats.Sum(vars)
		m.Variance = append([]float64(nil), vars[:keep]...)
		m.Ratio = make([]float64, keep)
		if total > 0 {
			for i := range m.Ratio {
				m.Ratio[i] = m.Variance[i] / total
			}
		}
	}
	return m, nil
}

// Transform centers x on the fitted mean and projects it onto the axes.
// Row i of the result corresponds to row i of x.
func (m *Model) Transform(x mat.Matrix) (*mat.Dense, error) {
	n, d := x.Dims()
	if d != len(m.Mean) {
		return nil, fmt.Errorf("pca: input has %d columns, model was fitted on %d", d, len(m.Mean))
	}
	centered := mat.NewDense(n, d, nil)
	centered.Apply(func(i, j int, v float64) float64 { return v - m.Mean[j] }, x)
	var out mat.Dense
	out.Mul(centered, m.Axes)
	return &out, nil
}

// Reduce fits a k-component PCA on x and returns the projection of x.
func Reduce(x mat.Matrix, k int) (*mat.Dense, *Model, error) {
	m, err := Fit(x, k)
	if err != nil {
		return nil, nil, err
	}
	out, err := m.Transform(x)
	if err != nil {
		return nil, nil, err
	}
	return out, m, nil
}

// flipSigns makes the largest-magnitude loading of every axis positive so
// repeated fits of the same data give the same orientation.
func flipSigns(axes *mat.Dense) {
	r, c := axes.Dims()
	for j := 0; j < c; j++ {
		best, sign := 0.0, 1.0
		for i := 0; i < r; i++ {
			if v := axes.At(i, j); math.Abs(v) > best {
				best = math.Abs(v)
				sign = math.Copysign(1, v)
			}
		}
		if sign < 0 {
			for i := 0; i < r; i++ {
				axes.Set(i, j, -axes.At(i, j))
			}
		}
	}
}
