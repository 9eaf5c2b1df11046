package complexity

import (
	"errors"
	"math"
	"testing"
)

// corpusOf builds a CorpusResult directly from total-complexity values,
// one synthetic design per value.
func corpusOf(t *testing.T, totals ...float64) CorpusResult {
	t.Helper()
	corpus := CorpusResult{Designs: make(map[string]DesignResult, len(totals))}
	for i, total := range totals {
		name := designName(i + 1)
		corpus.Designs[name] = DesignResult{
			Design: name,
			Number: i + 1,
			System: SystemResult{
				HDiversity:      total / 2,
				HFlexibility:    total / 4,
				HCombinability:  total / 4,
				TotalComplexity: total,
			},
		}
		corpus.Order = append(corpus.Order, name)
	}
	return corpus
}

func designName(n int) string {
	return "design_" + string(rune('0'+n))
}

func TestSummarizeEmptyCorpus(t *testing.T) {
	_, err := Summarize(CorpusResult{})
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("err = %v, want ErrEmptyCorpus", err)
	}
}

func TestSummarize(t *testing.T) {
	// Totals 1, 2, 3, 6: mean 3, population variance (4+1+0+9)/4 = 3.5.
	s, err := Summarize(corpusOf(t, 1, 2, 3, 6))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if s.Designs != 4 {
		t.Errorf("Designs = %d, want 4", s.Designs)
	}
	if !almostEqual(s.TotalComplexity.Mean, 3.0) {
		t.Errorf("Mean = %v, want 3.0", s.TotalComplexity.Mean)
	}
	if want := math.Sqrt(3.5); !almostEqual(s.TotalComplexity.Std, want) {
		t.Errorf("Std = %v, want %v (population)", s.TotalComplexity.Std, want)
	}
	if s.Min != 1.0 || s.Max != 6.0 {
		t.Errorf("Min/Max = %v/%v, want 1.0/6.0", s.Min, s.Max)
	}
	// Per-metric moments follow the same shape as the totals.
	if !almostEqual(s.Diversity.Mean, 1.5) {
		t.Errorf("Diversity.Mean = %v, want 1.5", s.Diversity.Mean)
	}
	if !almostEqual(s.Flexibility.Mean, 0.75) || !almostEqual(s.Combinability.Mean, 0.75) {
		t.Errorf("Flexibility/Combinability means = %v/%v, want 0.75",
			s.Flexibility.Mean, s.Combinability.Mean)
	}
}

func TestSummarizeSingleDesign(t *testing.T) {
	s, err := Summarize(corpusOf(t, 2.5))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if s.TotalComplexity.Mean != 2.5 || s.TotalComplexity.Std != 0.0 {
		t.Errorf("Moments = %+v, want mean 2.5, std 0.0", s.TotalComplexity)
	}
	if s.Min != 2.5 || s.Max != 2.5 {
		t.Errorf("Min/Max = %v/%v, want 2.5", s.Min, s.Max)
	}
}

func TestSummarizeWithTelemetryEmptyCorpus(t *testing.T) {
	if _, err := SummarizeWithTelemetry(CorpusResult{}, nil); !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("err = %v, want ErrEmptyCorpus", err)
	}
}
