package hansenlaw

import (
	"errors"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// recursion is the column varying, diagonal state space model
//
// x[n] = Phi[n] x[n+1] + Gamma[n] g[n]
//
// y[n] = C x[n]
//
// where x holds the K modes of one row, g is the driving signal and
// C = (1, ..., 1). It runs from the outer edge, n = cols-2, to the center.
type recursion struct {
	factors *Factors
	signal  *mat.Dense
}

// newRecursion checks that the factors and the driving signal match.
func newRecursion(factors *Factors, signal *mat.Dense) recursion {
	if _, cols := signal.Dims(); cols != factors.Cols() {
		panic(errors.New("Driving signal doesn't match the recursion factors"))
	}
	return recursion{factors, signal}
}

// run writes the observations into out, which must be zeroed and shaped
// like the driving signal. Rows are split over at most workers goroutines.
func (rec recursion) run(out *mat.Dense, workers int) {
	if rec.factors.Steps() == 0 {
		return
	}
	rows, _ := out.Dims()
	if workers > rows {
		workers = rows
	}
	if workers <= 1 {
		rec.sweep(out, 0, rows)
		return
	}

	var wg sync.WaitGroup
	chunk := (rows + workers - 1) / workers
	for from := 0; from < rows; from += chunk {
		to := min(from+chunk, rows)
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			rec.sweep(out, from, to)
		}(from, to)
	}
	wg.Wait()
}

// sweep runs the recursion for rows [from, to). Each goroutine owns its
// rows of out, so no locking is needed.
func (rec recursion) sweep(out *mat.Dense, from, to int) {
	state := make([]float64, (to-from)*K)
	for col := rec.factors.Steps() - 1; col >= 0; col-- {
		phi := rec.factors.Phi.RawRowView(col)
		gamma := rec.factors.Gamma.RawRowView(col)
		for row := from; row < to; row++ {
			x := state[(row-from)*K : (row-from+1)*K]
			rec.update(x, phi, gamma, rec.signal.At(row, col))
			out.Set(row, col, rec.observation(x))
		}
	}
}

// update advances the state x of one row by one column, Eq. (15) or (17).
// The modes are visited in a fixed order so a row gives the same bits
// wherever its state sits in memory.
func (recursion) update(x, phi, gamma []float64, g float64) {
	for k := 0; k < K; k++ {
		x[k] = phi[k]*x[k] + g*gamma[k]
	}
}

// observation returns C x.
func (recursion) observation(x []float64) float64 {
	var y float64
	for k := 0; k < K; k++ {
		y += x[k]
	}
	return y
}
