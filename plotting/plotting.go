// Package plotting draws half-images and their transforms with gonum/plot.
package plotting

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Size is the physical size of a figure.
type Size struct {
	Width, Height vg.Length
}

// DefaultSize is a 6 by 4 inch figure.
var DefaultSize = Size{6 * vg.Inch, 4 * vg.Inch}

// Curve is a named profile sampled every Dr, starting at the center.
type Curve struct {
	Name string
	Dr   float64
	Data []float64
}

// plottify turns a profile into plot points with radius as X.
func plottify(c Curve) plotter.XYs {
	dr := c.Dr
	if dr == 0 {
		dr = 1
	}
	pts := make(plotter.XYs, len(c.Data))
	for i := range pts {
		pts[i].X = float64(i) * dr
		pts[i].Y = c.Data[i]
	}
	return pts
}

// Profiles returns a line plot of the curves against the radius.
func Profiles(title string, curves ...Curve) (*plot.Plot, error) {
	if len(curves) == 0 {
		return nil, errors.New("plotting: no curves")
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "r"
	p.Y.Label.Text = "intensity"

	vs := make([]any, 0, 2*len(curves))
	for _, c := range curves {
		vs = append(vs, c.Name, plottify(c))
	}
	if err := plotutil.AddLines(p, vs...); err != nil {
		return nil, err
	}
	p.Legend.Top = true
	return p, nil
}

// grid exposes a half-image as a plotter.GridXYZ with columns on X and
// rows on Y.
type grid struct {
	m  mat.Matrix
	dr float64
}

func (g grid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g grid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g grid) X(c int) float64    { return float64(c) * g.dr }
func (g grid) Y(r int) float64    { return float64(r) }

// HeatMap returns a heat map of the half-image m.
func HeatMap(title string, m mat.Matrix, dr float64) (*plot.Plot, error) {
	rows, cols := m.Dims()
	if rows < 2 || cols < 2 {
		return nil, fmt.Errorf("plotting: heat map needs at least 2x2 samples, got %dx%d", rows, cols)
	}
	if dr == 0 {
		dr = 1
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "r"
	p.Y.Label.Text = "row"
	hm := plotter.NewHeatMap(grid{m, dr}, palette.Heat(64, 1))
	hm.Rasterized = rows*cols > 1<<14
	p.Add(hm)
	return p, nil
}

// Save writes p to fname; the extension selects the format (png, svg, pdf,
// eps, jpg, tif).
func Save(p *plot.Plot, size Size, fname string) error {
	return p.Save(size.Width, size.Height, fname)
}

// Write renders p in format to w.
func Write(w io.Writer, p *plot.Plot, size Size, format string) error {
	wt, err := p.WriterTo(size.Width, size.Height, strings.TrimPrefix(format, "."))
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// FormatOf returns the image format implied by fname.
func FormatOf(fname string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(fname), "."))
}
