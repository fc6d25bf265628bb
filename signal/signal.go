// Package signal holds the numerical collaborators of the Hansen-Law
// transform: the column gradient used by the inverse transform, the
// sub-pixel shifter used for alignment, and radial test functions with
// known Abel pairs.
package signal

import (
	"gonum.org/v1/gonum/mat"
)

// Differentiator computes the discrete gradient of a matrix along its last
// axis (the columns) for a given sample spacing.
type Differentiator interface {
	Gradient(m mat.Matrix, spacing float64) *mat.Dense
}

// Shifter translates a matrix along one axis by a continuous offset, so
// that the result at index i holds the input value at i - offset.
//
// axis 0 shifts along the rows (each column is an independent line) and
// axis 1 shifts along the columns (each row is an independent line).
type Shifter interface {
	Shift(m mat.Matrix, axis int, offset float64) *mat.Dense
}

// RadialFunction is a function of the radius r.
type RadialFunction func(r float64) float64

// Sample evaluates fn at the n radii 0, dr, ..., (n-1) dr.
func Sample(fn RadialFunction, n int, dr float64) []float64 {
	res := make([]float64, n)
	for index := range res {
		res[index] = fn(float64(index) * dr)
	}
	return res
}
