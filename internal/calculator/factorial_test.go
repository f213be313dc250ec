package calculator

import (
	"errors"
	"math"
	"testing"
)

func TestFactorial(t *testing.T) {
	cases := []struct {
		n    float64
		want float64
	}{
		{0, 1},
		{1, 1},
		{5, 120},
		{10, 3628800},
		{20, 2432902008176640000},
		{171, math.Inf(1)},
		{1e12, math.Inf(1)},
		{math.Inf(1), math.Inf(1)},
	}
	for _, c := range cases {
		got, err := factorial(c.n)
		if err != nil {
			t.Errorf("factorial(%v): unexpected error %v", c.n, err)
		} else if got != c.want {
			t.Errorf("factorial(%v): want %v, got %v", c.n, c.want, got)
		}
	}
	if f, _ := factorial(maxFactorial); math.IsInf(f, 0) {
		t.Errorf("factorial(%d) should be finite", maxFactorial)
	}
}

func TestFactorialRejects(t *testing.T) {
	for _, n := range []float64{-1, -0.5, 2.5, 0.1, math.NaN(), math.Inf(-1)} {
		_, err := factorial(n)
		var fe *FactorialError
		if !errors.As(err, &fe) {
			t.Errorf("factorial(%v): want FactorialError, got %v", n, err)
		}
	}
}
