package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestSummarizeColumns(t *testing.T) {
	m := mat.NewDense(4, 3, []float64{
		1, 5, 2,
		2, 5, 4,
		3, 5, 6,
		4, 5, 8,
	})
	rep, err := Summarize("/tmp/example.npy", "u2", m, Options{MaxColumns: 2})
	require.NoError(t, err)
	assert.Equal(t, "example.npy", rep.Name)
	assert.Equal(t, 4, rep.Rows)
	assert.Equal(t, 3, rep.Cols)
	assert.Equal(t, 1, rep.Constant)
	require.Len(t, rep.Stats, 2)

	c0 := rep.Stats[0]
	assert.Equal(t, 1.0, c0.Min)
	assert.Equal(t, 4.0, c0.Max)
	assert.InDelta(t, 2.5, c0.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), c0.Std, 1e-12)
	assert.Equal(t, 0.0, rep.Stats[1].Std)

	md := rep.Markdown()
	assert.True(t, strings.HasPrefix(md, "[MATRIX SUMMARY]\n"))
	assert.Contains(t, md, "Shape: 4 × 3")
	assert.Contains(t, md, "Dtype: u2")
	assert.Contains(t, md, "(1 more columns)")
	assert.NotContains(t, md, "[PRINCIPAL COMPONENTS]")
}

func TestSummarizeWithPCA(t *testing.T) {
	m := mat.NewDense(5, 3, []float64{
		1, 0.5, 3,
		2, 1.5, 1,
		3, 0.2, 4,
		4, 2.5, 1,
		5, 0.1, 5,
	})
	rep, err := Summarize("x.npy", "f8", m, Options{Components: 4})
	require.NoError(t, err)
	require.NotNil(t, rep.PCA)
	assert.Equal(t, 3, rep.PCA.Components())
	assert.Len(t, rep.Warnings, 1)

	md := rep.Markdown()
	assert.Contains(t, md, "[PRINCIPAL COMPONENTS]")
	assert.Contains(t, md, "- PC1:")
	assert.Contains(t, md, "- PC3:")
	assert.Contains(t, md, "cumulative 100.0%")
}

func TestSummarizeEmpty(t *testing.T) {
	rep, err := Summarize("e.npy", "f8", &mat.Dense{}, DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, rep.Markdown(), "matrix is empty")
}
