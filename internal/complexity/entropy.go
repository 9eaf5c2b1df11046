// Package complexity computes entropy-based structural complexity
// metrics over design graphs: system-wide entropies per design, local
// complexity per node, and corpus-level summary statistics.
package complexity

import (
	"math"
	"sort"
)

// Entropy computes the Shannon entropy, in bits, of a discrete
// probability distribution: -Σ p·log2(p) over strictly positive
// entries. Zero entries are excluded, matching the 0·log(0) = 0
// convention. An empty input, or one with no positive entries, yields
// exactly 0.0. The input is not required to sum exactly to 1; callers
// supply normalized counts.
func Entropy(probabilities []float64) float64 {
	h := 0.0
	for _, p := range probabilities {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// entropyOfCounts computes the Shannon entropy of an empirical
// distribution given as category counts. Entropy depends only on the
// multiset of counts, so the counts are sorted before summation to keep
// floating-point results bit-identical across map iteration orders.
func entropyOfCounts[K comparable](counts map[K]int) float64 {
	total := 0
	values := make([]int, 0, len(counts))
	for _, c := range counts {
		values = append(values, c)
		total += c
	}
	if total == 0 {
		return 0.0
	}
	sort.Ints(values)

	probs := make([]float64, len(values))
	for i, c := range values {
		probs[i] = float64(c) / float64(total)
	}
	return Entropy(probs)
}
