package cmd

import (
	"fmt"
	"image/color"

	"github.com/KaramelBytes/genoplot/internal/labels"
	"github.com/KaramelBytes/genoplot/internal/npy"
	"github.com/KaramelBytes/genoplot/internal/palette"
	"github.com/KaramelBytes/genoplot/internal/pca"
	"github.com/KaramelBytes/genoplot/internal/render"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

const (
	plotSuffix = ".png"
	pcaSuffix  = ".pca.npy"
)

// labelFlags are the labeling options shared by plotting commands.
type labelFlags struct {
	match     string
	collision string
	rowOrder  string
}

func (f *labelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.match, "match", "", "identifier matching: exact | substring (default from config)")
	cmd.Flags().StringVar(&f.collision, "collision", "", "substring collisions: error | last-wins (default from config)")
	cmd.Flags().StringVar(&f.rowOrder, "row-order", "", "file listing sample file names or ids in array row order")
}

func (f *labelFlags) reset() {
	f.match, f.collision, f.rowOrder = "", "", ""
}

// options merges flags over config.
func (f *labelFlags) options() (labels.Options, error) {
	match := cfg.MatchMode
	if f.match != "" {
		match = f.match
	}
	mode, err := labels.ParseMatchMode(match)
	if err != nil {
		return labels.Options{}, err
	}
	coll := cfg.Collision
	if f.collision != "" {
		coll = f.collision
	}
	policy, err := labels.ParseCollision(coll)
	if err != nil {
		return labels.Options{}, err
	}
	opt := labels.Options{Mode: mode, Collision: policy}
	if f.rowOrder != "" {
		order, err := labels.ReadRowOrder(f.rowOrder)
		if err != nil {
			return labels.Options{}, err
		}
		opt.RowOrder = order
	}
	return opt, nil
}

// oneOrThreeArgs accepts <array> or <array> <labels.csv> <samples-dir>.
func oneOrThreeArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 1 && len(args) != 3 {
		return fmt.Errorf("accepts <array-file> [<labels.csv> <samples-dir>], received %d args", len(args))
	}
	return nil
}

func loadArray(path string) (*mat.Dense, error) {
	m, h, err := npy.LoadWithHeader(path)
	if err != nil {
		return nil, err
	}
	r, c := m.Dims()
	log.WithFields(logrus.Fields{"file": path, "dtype": h.Dtype, "rows": r, "cols": c}).Info("loaded array")
	return m, nil
}

func reduce(m *mat.Dense, components int) (*mat.Dense, error) {
	out, model, err := pca.Reduce(m, components)
	if err != nil {
		return nil, err
	}
	if model.Truncated() {
		log.WithFields(logrus.Fields{
			"requested": model.Requested,
			"kept":      model.Components(),
		}).Warn("fewer principal components available than requested")
	}
	if model.Ratio != nil {
		log.WithField("explained_ratio", model.Ratio).Debug("fitted pca")
	}
	return out, nil
}

func buildPalette() (*palette.Palette, error) {
	return palette.New(cfg.LabelColors, cfg.UnknownLabel)
}

// resolveAssignments checks the sample count against rows before the labels
// table is read, then labels every sample.
func resolveAssignments(rows int, csvPath, dir string, lf *labelFlags) ([]labels.Assignment, error) {
	opt, err := lf.options()
	if err != nil {
		return nil, err
	}
	samples, err := labels.ListSamples(dir, cfg.ExcludeMarker)
	if err != nil {
		return nil, err
	}
	if err := labels.CheckCardinality(samples, rows); err != nil {
		return nil, err
	}
	table, err := labels.ReadTable(csvPath)
	if err != nil {
		return nil, err
	}
	as, err := labels.Resolve(samples, table, rows, opt)
	if err != nil {
		return nil, err
	}
	unlabeled := 0
	for _, a := range as {
		if a.Label == labels.Unlabeled {
			unlabeled++
		}
	}
	log.WithFields(logrus.Fields{
		"samples":   len(as),
		"table":     len(table),
		"unlabeled": unlabeled,
		"match":     opt.Mode,
	}).Info("resolved sample labels")
	return as, nil
}

func resolveColors(rows int, csvPath, dir string, lf *labelFlags) ([]color.RGBA, error) {
	pal, err := buildPalette()
	if err != nil {
		return nil, err
	}
	as, err := resolveAssignments(rows, csvPath, dir, lf)
	if err != nil {
		return nil, err
	}
	colors, _, err := labels.Colors(as, pal)
	return colors, err
}

// figureOptions applies config and an optional --dpi override.
func figureOptions(cmd *cobra.Command, dpi int, title string) render.Options {
	opt := render.DefaultOptions()
	opt.DPI = cfg.DPI
	opt.Width = cfg.WidthIn
	opt.Height = cfg.HeightIn
	if cmd.Flags().Changed("dpi") && dpi > 0 {
		opt.DPI = dpi
	}
	opt.Title = title
	return opt
}

func writePlot(cmd *cobra.Command, path string, m mat.Matrix, colors []color.RGBA, opt render.Options) error {
	if err := render.ScatterFile(path, m, colors, opt); err != nil {
		return err
	}
	w, h := opt.PixelSize()
	log.WithFields(logrus.Fields{"file": path, "width": w, "height": h, "colored": colors != nil}).Info("wrote plot")
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote plot to %s\n", path)
	}
	return nil
}
