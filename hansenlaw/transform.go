// Package hansenlaw implements the forward and inverse Abel transform of a
// right-side half-image with the recursive method of
//
// E. W. Hansen and P-L. Law, "Recursive methods for computing the Abel
// transform and its inverse", J. Opt. Soc. Am. A 2, 510-520 (1985).
//
// Column 0 of the half-image is the center of symmetry and the last column
// the outer edge. The recursion sweeps from the edge to the center once, so
// a transform costs O(rows cols K) for K = 9 modes.
//
// For the inverse transform of a projected profile g:
//
//	f, err := hansenlaw.TransformProfile(g, hansenlaw.DefaultOptions())
//
// and for the forward transform of a source half-image:
//
//	opts := hansenlaw.DefaultOptions()
//	opts.Direction = hansenlaw.Forward
//	proj, err := hansenlaw.Transform(im, opts)
package hansenlaw

import (
	"runtime"

	"github.com/hammal/abel/gonumExtensions"
	"github.com/hammal/abel/signal"
	"gonum.org/v1/gonum/mat"
)

// Options configures a transform.
type Options struct {
	// Sample spacing, used for the Jacobian (forward) and the derivative
	// (inverse). Zero means 1.
	Dr float64
	// Forward or Inverse
	Direction Direction
	// Sub-pixel shift of the driving signal along the columns. Shifts with
	// |Shift| <= 1e-3 are ignored.
	Shift float64
	// Number of goroutines the rows are split over. Zero or less means
	// GOMAXPROCS. The result does not depend on it.
	Workers int
	// Gradient used by the inverse transform, signal.CentralDifference if nil
	Differentiator signal.Differentiator
	// Resampler used for Shift, a zero filling signal.SplineShifter if nil
	Shifter signal.Shifter
}

// DefaultOptions returns unit spacing, the inverse direction and no shift.
func DefaultOptions() Options {
	return Options{Dr: 1, Direction: Inverse}
}

func (opts Options) dr() float64 {
	if opts.Dr == 0 {
		return 1
	}
	return opts.Dr
}

func (opts Options) workers() int {
	if opts.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return opts.Workers
}

func (opts Options) differentiator() signal.Differentiator {
	if opts.Differentiator == nil {
		return signal.CentralDifference{}
	}
	return opts.Differentiator
}

func (opts Options) shifter() signal.Shifter {
	if opts.Shifter == nil {
		return signal.SplineShifter{Boundary: signal.ZeroFill}
	}
	return opts.Shifter
}

// Transform returns the forward or inverse Abel transform of the half-image
// im, one profile per row. The result has the shape of im and its last
// column is always zero. It fails with ErrInvalidArgument, before any
// numerical work, if opts.Direction is unknown.
func Transform(im mat.Matrix, opts Options) (*mat.Dense, error) {
	rows, cols := im.Dims()
	factors, err := NewFactors(cols, opts.dr(), opts.Direction)
	if err != nil {
		return nil, err
	}
	if rows == 0 || cols == 0 {
		return &mat.Dense{}, nil
	}

	out := mat.NewDense(rows, cols, nil)
	rec := newRecursion(factors, drivingSignal(im, opts))
	rec.run(out, opts.workers())
	return out, nil
}

// TransformProfile is Transform for a single profile.
func TransformProfile(profile []float64, opts Options) ([]float64, error) {
	if err := opts.Direction.validate(); err != nil {
		return nil, err
	}
	if len(profile) == 0 {
		return []float64{}, nil
	}
	res, err := Transform(gonumExtensions.FromProfile(profile), opts)
	if err != nil {
		return nil, err
	}
	return res.RawRowView(0), nil
}
