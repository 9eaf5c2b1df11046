package complexity

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestEntropy(t *testing.T) {
	tests := []struct {
		name  string
		probs []float64
		want  float64
	}{
		{"empty", nil, 0.0},
		{"all zero", []float64{0, 0, 0}, 0.0},
		{"single category", []float64{1.0}, 0.0},
		{"uniform over 2", []float64{0.5, 0.5}, 1.0},
		{"uniform over 4", []float64{0.25, 0.25, 0.25, 0.25}, 2.0},
		{"two thirds one third", []float64{2.0 / 3.0, 1.0 / 3.0}, 0.9182958340544896},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Entropy(tt.probs); !almostEqual(got, tt.want) {
				t.Errorf("Entropy(%v) = %v, want %v", tt.probs, got, tt.want)
			}
		})
	}
}

func TestEntropyBounds(t *testing.T) {
	// 0 ≤ H ≤ log2(k), equality at log2(k) iff uniform.
	distributions := [][]float64{
		{0.7, 0.2, 0.1},
		{0.4, 0.3, 0.2, 0.1},
		{0.9, 0.05, 0.05},
		{1.0 / 3, 1.0 / 3, 1.0 / 3},
	}
	for _, p := range distributions {
		h := Entropy(p)
		if h < 0 {
			t.Errorf("Entropy(%v) = %v, want non-negative", p, h)
		}
		if limit := math.Log2(float64(len(p))); h > limit+tolerance {
			t.Errorf("Entropy(%v) = %v, exceeds log2(k) = %v", p, h, limit)
		}
	}

	uniform := Entropy([]float64{1.0 / 3, 1.0 / 3, 1.0 / 3})
	if !almostEqual(uniform, math.Log2(3)) {
		t.Errorf("uniform entropy = %v, want log2(3) = %v", uniform, math.Log2(3))
	}
}

func TestEntropyZeroPaddingInvariance(t *testing.T) {
	base := []float64{0.5, 0.3, 0.2}
	padded := []float64{0.5, 0.3, 0.2, 0, 0, 0}

	if got, want := Entropy(padded), Entropy(base); got != want {
		t.Errorf("padded entropy = %v, want %v", got, want)
	}
}

func TestEntropyOfCountsDeterministic(t *testing.T) {
	counts := map[string]int{"a": 3, "b": 2, "c": 2, "d": 1}

	first := entropyOfCounts(counts)
	for range 50 {
		if got := entropyOfCounts(counts); got != first {
			t.Fatalf("entropyOfCounts varied across calls: %v vs %v", got, first)
		}
	}
}

func TestEntropyOfCountsEmpty(t *testing.T) {
	if got := entropyOfCounts(map[string]int{}); got != 0.0 {
		t.Errorf("entropyOfCounts(empty) = %v, want 0.0", got)
	}
}
