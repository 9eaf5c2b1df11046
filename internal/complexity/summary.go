package complexity

import (
	"errors"
	"math"

	"github.com/finchworks/aviary/internal/telemetry"
)

// ErrEmptyCorpus is returned when summary statistics are requested over
// zero analyzed designs. Statistics are undefined there; failing
// explicitly beats returning NaN.
var ErrEmptyCorpus = errors.New("no analyzed designs in corpus")

// Moments holds the mean and population standard deviation of one
// metric across the corpus.
type Moments struct {
	Mean float64
	Std  float64
}

// Summary holds corpus-wide statistics over the per-design system
// entropies.
type Summary struct {
	Designs int

	TotalComplexity Moments
	Min             float64 // minimum total complexity
	Max             float64 // maximum total complexity

	Diversity     Moments
	Flexibility   Moments
	Combinability Moments
}

// Summarize computes corpus-wide statistics over the analyzed designs.
// Returns ErrEmptyCorpus when the corpus holds no results.
func Summarize(corpus CorpusResult) (Summary, error) {
	if len(corpus.Order) == 0 {
		return Summary{}, ErrEmptyCorpus
	}

	totals := make([]float64, 0, len(corpus.Order))
	diversities := make([]float64, 0, len(corpus.Order))
	flexibilities := make([]float64, 0, len(corpus.Order))
	combinabilities := make([]float64, 0, len(corpus.Order))
	for _, name := range corpus.Order {
		sys := corpus.Designs[name].System
		totals = append(totals, sys.TotalComplexity)
		diversities = append(diversities, sys.HDiversity)
		flexibilities = append(flexibilities, sys.HFlexibility)
		combinabilities = append(combinabilities, sys.HCombinability)
	}

	s := Summary{
		Designs:         len(totals),
		TotalComplexity: moments(totals),
		Diversity:       moments(diversities),
		Flexibility:     moments(flexibilities),
		Combinability:   moments(combinabilities),
		Min:             totals[0],
		Max:             totals[0],
	}
	for _, v := range totals[1:] {
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	return s, nil
}

// SummarizeWithTelemetry wraps Summarize and records the outcome on the
// given emitter. A nil emitter is a no-op.
func SummarizeWithTelemetry(corpus CorpusResult, emitter *telemetry.Emitter) (Summary, error) {
	s, err := Summarize(corpus)
	if err != nil {
		return Summary{}, err
	}
	_ = emitter.Emit(telemetry.Event{
		Kind: telemetry.KindSummaryComputed,
		Data: map[string]float64{
			"mean": s.TotalComplexity.Mean,
			"std":  s.TotalComplexity.Std,
			"min":  s.Min,
			"max":  s.Max,
		},
	})
	return s, nil
}

// moments computes the mean and population standard deviation.
func moments(values []float64) Moments {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return Moments{Mean: mean, Std: math.Sqrt(variance)}
}
