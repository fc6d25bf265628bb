package signal

import (
	"gonum.org/v1/gonum/mat"
)

// CentralDifference is the standard discrete gradient. Interior samples use
// second order central differences and the two edge samples use first order
// one-sided differences. Lines shorter than two samples have a zero gradient.
type CentralDifference struct{}

// Gradient returns the gradient of m along its columns.
func (CentralDifference) Gradient(m mat.Matrix, spacing float64) *mat.Dense {
	rows, cols := m.Dims()
	res := mat.NewDense(rows, cols, nil)
	if cols < 2 {
		return res
	}
	line := make([]float64, cols)
	for row := 0; row < rows; row++ {
		mat.Row(line, row, m)
		dst := res.RawRowView(row)
		dst[0] = (line[1] - line[0]) / spacing
		dst[cols-1] = (line[cols-1] - line[cols-2]) / spacing
		for col := 1; col < cols-1; col++ {
			dst[col] = (line[col+1] - line[col-1]) / (2 * spacing)
		}
	}
	return res
}
