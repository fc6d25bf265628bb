package signal

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// Gaussian is the Abel transform pair
//
// f(r) = exp(-r^2 / sigma^2)
//
// F(y) = sigma sqrt(pi) exp(-y^2 / sigma^2)
//
// where f is the radially symmetric source and F its projection.
type Gaussian struct {
	Sigma float64
}

// Source returns f(r).
func (g Gaussian) Source(r float64) float64 {
	return math.Exp(-r * r / (g.Sigma * g.Sigma))
}

// Projection returns F(r), the forward Abel transform of Source.
func (g Gaussian) Projection(r float64) float64 {
	return g.Sigma * math.Sqrt(math.Pi) * g.Source(r)
}

// Project evaluates the forward Abel transform of fn at distance y by direct
// Gauss-Legendre quadrature with n points, assuming fn vanishes beyond rmax.
//
// F(y) = 2 int_y^rmax f(r) r / sqrt(r^2 - y^2) dr
//
// is integrated after the substitution r^2 = y^2 + t^2, which removes the
// singularity at r = y.
func Project(fn RadialFunction, y, rmax float64, n int) float64 {
	if y >= rmax {
		return 0
	}
	y2 := y * y
	tmax := math.Sqrt(rmax*rmax - y2)
	integrand := func(t float64) float64 {
		return fn(math.Sqrt(y2 + t*t))
	}
	return 2 * quad.Fixed(integrand, 0, tmax, n, nil, 0)
}

// ProjectProfile samples Project at the n distances 0, dr, ..., (n-1) dr.
func ProjectProfile(fn RadialFunction, n int, dr, rmax float64, points int) []float64 {
	return Sample(func(y float64) float64 {
		return Project(fn, y, rmax, points)
	}, n, dr)
}
