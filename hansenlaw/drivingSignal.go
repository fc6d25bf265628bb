package hansenlaw

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// shiftThreshold is the smallest |shift| that is worth resampling for.
const shiftThreshold = 1.0e-3

// drivingSignal returns the input of the recursion: the image itself for the
// forward transform and its column gradient for the inverse transform,
// shifted along the columns when opts.Shift is large enough.
func drivingSignal(im mat.Matrix, opts Options) *mat.Dense {
	var gp *mat.Dense
	switch opts.Direction {
	case Forward:
		gp = mat.DenseCopyOf(im)
	default:
		gp = opts.differentiator().Gradient(im, opts.dr())
	}
	if math.Abs(opts.Shift) > shiftThreshold {
		gp = opts.shifter().Shift(gp, 1, opts.Shift)
	}
	return gp
}
