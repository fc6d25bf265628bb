package signal

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
)

// Boundary selects what a shifted line holds where the source position falls
// outside the sampled range.
type Boundary int

const (
	// ZeroFill sets samples that map outside the input to zero.
	ZeroFill Boundary = iota
	// HoldEdge repeats the nearest edge sample.
	HoldEdge
)

// String returns the configuration name of the boundary policy.
func (b Boundary) String() string {
	switch b {
	case ZeroFill:
		return "zero"
	case HoldEdge:
		return "edge"
	}
	return fmt.Sprintf("Boundary(%d)", int(b))
}

// ParseBoundary maps a configuration name to a boundary policy.
func ParseBoundary(name string) (Boundary, error) {
	switch name {
	case "", "zero":
		return ZeroFill, nil
	case "edge":
		return HoldEdge, nil
	}
	return ZeroFill, fmt.Errorf("signal: unknown boundary %q", name)
}

// SplineShifter resamples every line with a natural cubic spline through the
// samples at integer positions.
type SplineShifter struct {
	Boundary Boundary
}

// Shift returns m translated by offset samples along axis. It panics if axis
// is neither 0 nor 1.
func (s SplineShifter) Shift(m mat.Matrix, axis int, offset float64) *mat.Dense {
	rows, cols := m.Dims()
	res := mat.NewDense(rows, cols, nil)
	switch axis {
	case 0:
		line := make([]float64, rows)
		for col := 0; col < cols; col++ {
			mat.Col(line, col, m)
			res.SetCol(col, s.shiftLine(line, offset))
		}
	case 1:
		line := make([]float64, cols)
		for row := 0; row < rows; row++ {
			mat.Row(line, row, m)
			res.SetRow(row, s.shiftLine(line, offset))
		}
	default:
		panic(fmt.Sprintf("signal: invalid shift axis %d", axis))
	}
	return res
}

func (s SplineShifter) shiftLine(line []float64, offset float64) []float64 {
	n := len(line)
	res := make([]float64, n)
	if n < 2 {
		// A single sample only survives a zero offset unless edges are held.
		if offset == 0 || s.Boundary == HoldEdge {
			copy(res, line)
		}
		return res
	}

	xs := make([]float64, n)
	for index := range xs {
		xs[index] = float64(index)
	}
	var predictor interp.Predictor
	var spline interp.NaturalCubic
	if err := spline.Fit(xs, line); err == nil {
		predictor = &spline
	} else {
		var linear interp.PiecewiseLinear
		linear.Fit(xs, line)
		predictor = linear
	}

	last := float64(n - 1)
	for index := range res {
		x := float64(index) - offset
		if s.Boundary == ZeroFill && (x < 0 || x > last) {
			continue
		}
		// Predict holds the edge values outside [0, last].
		res[index] = predictor.Predict(x)
	}
	return res
}
