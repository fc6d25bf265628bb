package gonumExtensions

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Full returns a (m by n) matrix filled with value
func Full(m, n int, value float64) *mat.Dense {
	data := make([]float64, m*n)
	for index := range data {
		data[index] = value
	}
	return mat.NewDense(m, n, data)
}

// FromRows copies a slice of equally long rows into a dense matrix. It
// returns an error when the rows are ragged or empty.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("gonumExtensions: empty matrix")
	}
	n := len(rows[0])
	data := make([]float64, 0, len(rows)*n)
	for index, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("gonumExtensions: row %d has %d columns, want %d", index, len(row), n)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), n, data), nil
}

// FromProfile returns a (1 by len(profile)) matrix holding a copy of profile.
func FromProfile(profile []float64) *mat.Dense {
	data := make([]float64, len(profile))
	copy(data, profile)
	return mat.NewDense(1, len(data), data)
}

// Rows copies matrix into a freshly allocated [row][column] slice.
func Rows(matrix mat.Matrix) [][]float64 {
	m, n := matrix.Dims()
	res := make([][]float64, m)
	for row := range res {
		res[row] = make([]float64, n)
		mat.Row(res[row], row, matrix)
	}
	return res
}

// NonFinite returns the position of the first NaN or Inf in matrix, scanning
// row by row. found is false when every element is finite.
func NonFinite(matrix mat.Matrix) (row, col int, found bool) {
	m, n := matrix.Dims()
	for row = 0; row < m; row++ {
		for col = 0; col < n; col++ {
			if v := matrix.At(row, col); math.IsNaN(v) || math.IsInf(v, 0) {
				return row, col, true
			}
		}
	}
	return 0, 0, false
}
