package analysis

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/genoplot/internal/pca"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Options controls matrix summaries.
type Options struct {
	// MaxColumns limits how many leading columns get per-column statistics;
	// 0 means all of them.
	MaxColumns int
	// Components, when positive, fits a PCA and reports explained variance.
	Components int
}

// DefaultOptions returns reasonable defaults for matrix summaries.
func DefaultOptions() Options {
	return Options{MaxColumns: 8}
}

// Report summarizes a feature matrix.
type Report struct {
	Name     string
	Dtype    string
	Rows     int
	Cols     int
	Constant int // columns with zero variance
	Stats    []ColumnSummary
	PCA      *pca.Model
	Warnings []string
}

// ColumnSummary captures numeric statistics for one column.
type ColumnSummary struct {
	Index int
	Min   float64
	Max   float64
	Mean  float64
	Std   float64
}

// Summarize computes a Report for m.
func Summarize(name, dtype string, m mat.Matrix, opt Options) (*Report, error) {
	rows, cols := m.Dims()
	rep := &Report{Name: filepath.Base(name), Dtype: dtype, Rows: rows, Cols: cols}
	if rows == 0 || cols == 0 {
		rep.Warnings = append(rep.Warnings, "matrix is empty")
		return rep, nil
	}
	limit := cols
	if opt.MaxColumns > 0 && opt.MaxColumns < cols {
		limit = opt.MaxColumns
	}
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, m)
		mean, std := stat.MeanStdDev(col, nil)
		if rows < 2 {
			std = 0
		}
		if floats.Max(col) == floats.Min(col) {
			rep.Constant++
		}
		if j < limit {
			rep.Stats = append(rep.Stats, ColumnSummary{
				Index: j,
				Min:   floats.Min(col),
				Max:   floats.Max(col),
				Mean:  mean,
				Std:   std,
			})
		}
	}
	if rep.Constant == cols {
		rep.Warnings = append(rep.Warnings, "every column is constant; PCA is meaningless")
	}
	if opt.Components > 0 {
		model, err := pca.Fit(m, opt.Components)
		if err != nil {
			return nil, err
		}
		rep.PCA = model
		if model.Truncated() {
			rep.Warnings = append(rep.Warnings, fmt.Sprintf("only %d of %d requested components available", model.Components(), model.Requested))
		}
	}
	return rep, nil
}

// Markdown renders the report for terminal output.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[MATRIX SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	if r.Dtype != "" {
		b.WriteString(fmt.Sprintf("Dtype: %s\n", r.Dtype))
	}
	b.WriteString(fmt.Sprintf("Shape: %d × %d\n", r.Rows, r.Cols))
	if r.Constant > 0 {
		b.WriteString(fmt.Sprintf("Constant columns: %d\n", r.Constant))
	}
	if len(r.Stats) > 0 {
		b.WriteString("\n[COLUMNS]\n")
		for _, c := range r.Stats {
			b.WriteString(fmt.Sprintf("- col %d: min %.4g, max %.4g, mean %.4g, std %.4g\n", c.Index, c.Min, c.Max, c.Mean, c.Std))
		}
		if len(r.Stats) < r.Cols {
			b.WriteString(fmt.Sprintf("  (%d more columns)\n", r.Cols-len(r.Stats)))
		}
	}
	if r.PCA != nil && r.PCA.Variance != nil {
		b.WriteString("\n[PRINCIPAL COMPONENTS]\n")
		cum := 0.0
		for i, v := range r.PCA.Variance {
			cum += r.PCA.Ratio[i]
			b.WriteString(fmt.Sprintf("- PC%d: variance %.4g, explained %.1f%% (cumulative %.1f%%)\n",
				i+1, v, 100*r.PCA.Ratio[i], 100*math.Min(cum, 1)))
		}
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n[WARNINGS]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}
