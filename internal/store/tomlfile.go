package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/finchworks/aviary/internal/complexity"
)

// ResultsFileName is the TOML results file written next to a run.
const ResultsFileName = "results.toml"

// maxHistoryEntries is the maximum number of previous run summaries kept.
const maxHistoryEntries = 10

// resultsFile is the TOML-serializable representation of the results
// file: the most recent run plus a history of previous run summaries.
type resultsFile struct {
	Current runRecord       `toml:"current"`
	History []runSummaryRec `toml:"history"`
}

// runRecord is the TOML-serializable form of one full run.
type runRecord struct {
	AnalyzedAt  time.Time      `toml:"analyzed_at"`
	DesignCount int            `toml:"design_count"`
	MeanTotal   float64        `toml:"mean_total"`
	StdTotal    float64        `toml:"std_total"`
	MinTotal    float64        `toml:"min_total"`
	MaxTotal    float64        `toml:"max_total"`
	Designs     []designRecord `toml:"designs"`
	Skipped     []skippedRec   `toml:"skipped,omitempty"`
}

// designRecord is the TOML-serializable form of one design's entropies.
type designRecord struct {
	Design          string  `toml:"design"`
	Number          int     `toml:"number"`
	Nodes           int     `toml:"nodes"`
	Edges           int     `toml:"edges"`
	HDiversity      float64 `toml:"h_diversity"`
	HFlexibility    float64 `toml:"h_flexibility"`
	HCombinability  float64 `toml:"h_combinability"`
	HInDegree       float64 `toml:"h_in_degree"`
	HOutDegree      float64 `toml:"h_out_degree"`
	TotalComplexity float64 `toml:"total_complexity"`
}

// skippedRec records a design excluded from the run and why.
type skippedRec struct {
	Design string `toml:"design"`
	Reason string `toml:"reason"`
}

// runSummaryRec captures a condensed record of a previous run.
type runSummaryRec struct {
	AnalyzedAt  time.Time `toml:"analyzed_at"`
	DesignCount int       `toml:"design_count"`
	MeanTotal   float64   `toml:"mean_total"`
	MinTotal    float64   `toml:"min_total"`
	MaxTotal    float64   `toml:"max_total"`
}

// SaveResults writes the run's results file into dir. A previous file's
// current section is rotated into the history array, capped at
// maxHistoryEntries most recent entries. The write is atomic: a temp
// file renamed into place.
func SaveResults(dir string, corpus complexity.CorpusResult, summary complexity.Summary) error {
	existing, err := loadResultsFile(dir)
	if err != nil {
		return fmt.Errorf("loading existing results: %w", err)
	}

	record := runRecord{
		AnalyzedAt:  time.Now().UTC(),
		DesignCount: summary.Designs,
		MeanTotal:   summary.TotalComplexity.Mean,
		StdTotal:    summary.TotalComplexity.Std,
		MinTotal:    summary.Min,
		MaxTotal:    summary.Max,
	}
	for _, name := range corpus.Order {
		r := corpus.Designs[name]
		sys := r.System
		record.Designs = append(record.Designs, designRecord{
			Design:          r.Design,
			Number:          r.Number,
			Nodes:           r.Nodes,
			Edges:           r.Edges,
			HDiversity:      sys.HDiversity,
			HFlexibility:    sys.HFlexibility,
			HCombinability:  sys.HCombinability,
			HInDegree:       sys.HInDegree,
			HOutDegree:      sys.HOutDegree,
			TotalComplexity: sys.TotalComplexity,
		})
	}
	for _, f := range corpus.Failures {
		record.Skipped = append(record.Skipped, skippedRec{Design: f.Design, Reason: f.Err.Error()})
	}

	var history []runSummaryRec
	if existing != nil {
		// Rotate the previous current into history.
		history = append(existing.History, runSummaryRec{
			AnalyzedAt:  existing.Current.AnalyzedAt,
			DesignCount: existing.Current.DesignCount,
			MeanTotal:   existing.Current.MeanTotal,
			MinTotal:    existing.Current.MinTotal,
			MaxTotal:    existing.Current.MaxTotal,
		})
	}
	if len(history) > maxHistoryEntries {
		history = history[len(history)-maxHistoryEntries:]
	}

	data, err := toml.Marshal(resultsFile{Current: record, History: history})
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}

	path := filepath.Join(dir, ResultsFileName)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp results file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming results file: %w", err)
	}
	return nil
}

// RunHistory is an exported snapshot of a previous run.
type RunHistory struct {
	AnalyzedAt  time.Time
	DesignCount int
	MeanTotal   float64
	MinTotal    float64
	MaxTotal    float64
}

// LoadHistory returns up to maxHistoryEntries previous run summaries
// from the results file in dir. Returns nil with no error when no
// results file exists yet.
func LoadHistory(dir string) ([]RunHistory, error) {
	file, err := loadResultsFile(dir)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, nil
	}
	history := make([]RunHistory, len(file.History))
	for i, h := range file.History {
		history[i] = RunHistory{
			AnalyzedAt:  h.AnalyzedAt,
			DesignCount: h.DesignCount,
			MeanTotal:   h.MeanTotal,
			MinTotal:    h.MinTotal,
			MaxTotal:    h.MaxTotal,
		}
	}
	return history, nil
}

// loadResultsFile reads and parses the raw results file.
// Returns nil, nil if the file does not exist.
func loadResultsFile(dir string) (*resultsFile, error) {
	data, err := os.ReadFile(filepath.Join(dir, ResultsFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading results file: %w", err)
	}
	var file resultsFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing results file: %w", err)
	}
	return &file, nil
}
