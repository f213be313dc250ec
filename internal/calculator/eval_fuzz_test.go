package calculator_test

import (
	"math"
	"testing"

	"calcbot/internal/calculator"
)

func FuzzEvaluate(f *testing.F) {
	seeds := []string{"2+3*4", "(2+3", "2^3^2", "5!", "log(2)", "ln(e)", "1<<4", "1.2.3", "pi*PI"}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		// Keep nesting shallow; the evaluator has no depth limit of its own.
		if len(s) > 64 {
			t.Skip()
		}
		a, errA := calculator.Evaluate(s)
		b, errB := calculator.Evaluate(s)
		if (errA == nil) != (errB == nil) {
			t.Fatalf("%q: inconsistent errors %v and %v", s, errA, errB)
		}
		if errA == nil && a != b && !(math.IsNaN(a) && math.IsNaN(b)) {
			t.Fatalf("%q: inconsistent results %v and %v", s, a, b)
		}
	})
}
