// Package render draws two-dimensional scatter plots of matrix rows.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/KaramelBytes/genoplot/internal/utils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Options controls figure geometry and point styling.
type Options struct {
	// Width and Height are the figure size in inches.
	Width, Height float64
	DPI           int
	// LabeledArea and LabeledAlpha style points when per-row colors are
	// given. Area is in square points.
	LabeledArea  float64
	LabeledAlpha float64
	// PlainArea and PlainColor style points without per-row colors.
	PlainArea  float64
	PlainColor color.Color
	Title      string
}

// DefaultOptions returns a 6.4×4.8 inch figure at 80 DPI.
func DefaultOptions() Options {
	return Options{
		Width:        6.4,
		Height:       4.8,
		DPI:          80,
		LabeledArea:  60,
		LabeledAlpha: 0.5,
		PlainArea:    36,
		PlainColor:   color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	}
}

// PixelSize returns the raster dimensions of the figure.
func (o Options) PixelSize() (int, int) {
	return int(o.Width*float64(o.DPI) + 0.5), int(o.Height*float64(o.DPI) + 0.5)
}

// radius converts a marker area in square points to a circle radius.
func radius(area float64) vg.Length {
	return vg.Points(math.Sqrt(area / math.Pi))
}

// Scatter plots column 0 against column 1 of x and writes a PNG to w.
// colors may be nil; otherwise it must have one entry per row of x.
func Scatter(w io.Writer, x mat.Matrix, colors []color.RGBA, opt Options) error {
	p, err := newPlot(x, colors, opt)
	if err != nil {
		return err
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(opt.Width)*vg.Inch, vg.Length(opt.Height)*vg.Inch),
		vgimg.UseDPI(opt.DPI),
		vgimg.UseBackgroundColor(color.White),
	)
	p.Draw(draw.New(c))
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// ScatterFile is Scatter into a file, written atomically.
func ScatterFile(path string, x mat.Matrix, colors []color.RGBA, opt Options) error {
	return utils.SafeWrite(path, func(w io.Writer) error {
		return Scatter(w, x, colors, opt)
	})
}

func newPlot(x mat.Matrix, colors []color.RGBA, opt Options) (*plot.Plot, error) {
	if opt.DPI <= 0 || opt.Width <= 0 || opt.Height <= 0 {
		return nil, errors.New("render: figure size and dpi must be positive")
	}
	n, d := x.Dims()
	if d < 2 {
		return nil, fmt.Errorf("render: need at least 2 columns, got %d", d)
	}
	if colors != nil && len(colors) != n {
		return nil, fmt.Errorf("render: %d colors for %d rows", len(colors), n)
	}

	xys := make(plotter.XYs, n)
	for i := range xys {
		xys[i].X = x.At(i, 0)
		xys[i].Y = x.At(i, 1)
	}
	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	sc.GlyphStyle = draw.GlyphStyle{
		Color:  opt.PlainColor,
		Radius: radius(opt.PlainArea),
		Shape:  draw.CircleGlyph{},
	}
	if colors != nil {
		r := radius(opt.LabeledArea)
		alpha := uint8(math.Round(opt.LabeledAlpha * 255))
		sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			c := colors[i]
			return draw.GlyphStyle{
				Color:  color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha},
				Radius: r,
				Shape:  draw.CircleGlyph{},
			}
		}
	}

	p := plot.New()
	p.Title.Text = opt.Title
	p.Add(sc)
	return p, nil
}
