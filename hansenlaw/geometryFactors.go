package hansenlaw

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Factors holds the diagonal propagation (Phi) and gain (Gamma) matrices of
// the recursion, one row of K modes per image column. Row c belongs to
// column c; the outer edge column cols-1 has no row.
type Factors struct {
	// Propagation factors, (cols-1) x K
	Phi *mat.Dense
	// Gain factors, (cols-1) x K
	Gamma *mat.Dense

	cols int
}

// NewFactors computes the factors for a half-image of cols columns with
// sample spacing dr. For cols < 2 the factor set is empty and Phi and Gamma
// are nil.
func NewFactors(cols int, dr float64, direction Direction) (*Factors, error) {
	if err := direction.validate(); err != nil {
		return nil, err
	}
	f := &Factors{cols: cols}
	steps := f.Steps()
	if steps == 0 {
		return f, nil
	}

	f.Phi = mat.NewDense(steps, K, nil)
	f.Gamma = mat.NewDense(steps, K, nil)
	for col := 0; col < steps; col++ {
		// Hansen & Law count the steps n from the outer edge, n = cols-2-col,
		// so N-n-1 = col+1 and (N-n)/(N-n-1) = (col+2)/(col+1).
		denom := float64(col + 1)
		ratio := float64(col+2) / denom

		phi := f.Phi.RawRowView(col)
		phi[0] = 1
		for k := 1; k < K; k++ {
			// Eq. (16a)
			phi[k] = math.Pow(ratio, lam[k])
		}

		gamma := f.Gamma.RawRowView(col)
		switch direction {
		case Forward:
			for k := 0; k < K; k++ {
				// Eq. (16c)
				lam1 := lam[k] + 1
				gamma[k] = h[k] * 2 * denom * (1 - math.Pow(ratio, lam1)) / lam1
			}
		case Inverse:
			// Eq. (18), lambda = 0 takes the logarithmic limit.
			gamma[0] = -h[0] * math.Log(ratio)
			for k := 1; k < K; k++ {
				gamma[k] = h[k] * (1 - phi[k]) / lam[k]
			}
		}
	}

	if direction == Forward {
		// Jacobian of the forward integral, saves rescaling the output.
		f.Gamma.Scale(-math.Pi*dr, f.Gamma)
	}
	return f, nil
}

// Cols returns the number of image columns the factors were computed for.
func (f *Factors) Cols() int {
	return f.cols
}

// Steps returns the number of recursion steps, max(cols-1, 0).
func (f *Factors) Steps() int {
	if f.cols < 2 {
		return 0
	}
	return f.cols - 1
}
