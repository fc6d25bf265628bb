package hansenlaw

// K is the number of exponential modes in the approximation of the Abel
// kernel.
const K = 9

// Hansen & Law, J. Opt. Soc. Am. A 2, 510-520 (1985), Table 1.
var (
	h   = [K]float64{0.318, 0.19, 0.35, 0.82, 1.8, 3.9, 8.3, 19.6, 48.3}
	lam = [K]float64{0.0, -2.1, -6.2, -22.4, -92.5, -414.5, -1889.4, -8990.9, -47391.1}
)

// Weights returns a copy of the mode weights h.
func Weights() [K]float64 {
	return h
}

// Exponents returns a copy of the mode exponents lambda. Exponents()[0] is 0.
func Exponents() [K]float64 {
	return lam
}
