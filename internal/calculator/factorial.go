package calculator

import "math"

// maxFactorial is the largest n for which n! is finite as a float64.
const maxFactorial = 170

func factorial(n float64) (float64, error) {
	if math.IsNaN(n) || n < 0 || (!math.IsInf(n, 1) && n != math.Trunc(n)) {
		return math.NaN(), &FactorialError{Operand: n}
	}
	if n > maxFactorial {
		return math.Inf(1), nil
	}
	return fact(n), nil
}

func fact(n float64) float64 {
	if n == 0 {
		return 1
	}
	return n * fact(n-1)
}
