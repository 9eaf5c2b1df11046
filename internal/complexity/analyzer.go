package complexity

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/finchworks/aviary/internal/design"
	"github.com/finchworks/aviary/internal/graph"
	"github.com/finchworks/aviary/internal/telemetry"
)

// DesignResult holds everything computed for one design: the system
// entropies, the per-node complexity mapping, and the descriptive
// counts used by the representative-design selector.
type DesignResult struct {
	Design string // design directory name (corpus key)
	Name   string // name field from the record
	Number int    // embedded design index

	Nodes int
	Edges int

	// ComponentTypes is the sorted set of distinct component types.
	ComponentTypes []string
	// ConnTypeCount is the number of distinct from→to port pairings.
	ConnTypeCount int
	// Reciprocal counts edge pairs connected in both directions.
	Reciprocal int
	// OneWay counts edges with no reverse counterpart.
	OneWay int

	System     SystemResult
	NodeScores map[string]NodeResult
}

// Failure records a design that could not be analyzed and why.
type Failure struct {
	Design string
	Err    error
}

// CorpusStats aggregates descriptive statistics over the loaded corpus.
type CorpusStats struct {
	DesignCount    int
	TotalNodes     int
	TotalEdges     int
	AvgNodes       float64
	AvgEdges       float64
	ComponentTypes []string // sorted distinct types across all designs
}

// CorpusResult is the outcome of analyzing a whole corpus. Designs maps
// directory name to result; Order lists design names ascending by
// embedded number so iteration is reproducible regardless of worker
// completion order.
type CorpusResult struct {
	Designs  map[string]DesignResult
	Order    []string
	Failures []Failure
	Stats    CorpusStats
}

// Analyzer runs the per-design pipeline across a corpus. Designs are
// independent, so they are fanned out to a bounded worker pool; results
// are recombined keyed by design name, keeping aggregates deterministic.
type Analyzer struct {
	// Workers bounds the analysis pool. Values below 1 mean sequential.
	Workers int
	// Emitter receives JSONL telemetry events; nil disables telemetry.
	Emitter *telemetry.Emitter
}

// AnalyzeDesign builds the design graph for one record and computes its
// system entropies, per-node complexities, and descriptive counts.
func AnalyzeDesign(designID string, rec design.Record) (DesignResult, error) {
	g, err := graph.Build(designID, rec)
	if err != nil {
		return DesignResult{}, err
	}

	r := DesignResult{
		Design:     designID,
		Name:       rec.Name,
		Number:     design.Number(designID),
		Nodes:      g.NumNodes(),
		Edges:      g.NumEdges(),
		System:     SystemEntropies(g),
		NodeScores: AllNodeComplexities(g),
	}

	types := make(map[string]bool)
	for _, id := range g.Nodes() {
		types[g.Node(id).ComponentType] = true
	}
	r.ComponentTypes = sortedKeys(types)

	connTypes := make(map[string]bool)
	for _, e := range g.Edges() {
		connTypes[e.FromPort+"→"+e.ToPort] = true
	}
	r.ConnTypeCount = len(connTypes)

	r.Reciprocal, r.OneWay = countReciprocal(g)
	return r, nil
}

// countReciprocal classifies edges by whether the reverse ordered pair
// also occurs in the design. Each reciprocal pair is counted once.
func countReciprocal(g *graph.Graph) (reciprocal, oneWay int) {
	pairs := make(map[[2]string]bool)
	for _, e := range g.Edges() {
		pairs[[2]string{e.From, e.To}] = true
	}
	bidirectional := 0
	for _, e := range g.Edges() {
		if pairs[[2]string{e.To, e.From}] {
			bidirectional++
		} else {
			oneWay++
		}
	}
	return bidirectional / 2, oneWay
}

// AnalyzeCorpus scans root for design directories, analyzes every
// design, and aggregates the results. Malformed designs are skipped and
// reported in Failures; they never abort the rest of the corpus.
func (a *Analyzer) AnalyzeCorpus(root string) (CorpusResult, error) {
	dirs, err := design.ScanCorpus(root)
	if err != nil {
		return CorpusResult{}, fmt.Errorf("scanning corpus: %w", err)
	}
	a.emit(telemetry.Event{Kind: telemetry.KindCorpusScan, Data: map[string]int{"designs": len(dirs)}})

	type outcome struct {
		design string
		result DesignResult
		err    error
	}

	workers := a.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(dirs) && len(dirs) > 0 {
		workers = len(dirs)
	}

	jobs := make(chan string)
	outcomes := make(chan outcome, len(dirs))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for dir := range jobs {
				designID := filepath.Base(dir)
				rec, err := design.LoadRecord(dir)
				if err != nil {
					outcomes <- outcome{design: designID, err: err}
					continue
				}
				a.emit(telemetry.Event{
					Kind:   telemetry.KindDesignLoaded,
					Design: designID,
					Data:   map[string]int{"components": len(rec.Components), "connections": len(rec.Connections)},
				})
				result, err := AnalyzeDesign(designID, rec)
				outcomes <- outcome{design: designID, result: result, err: err}
			}
		}()
	}

	for _, dir := range dirs {
		jobs <- dir
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	corpus := CorpusResult{Designs: make(map[string]DesignResult, len(dirs))}
	for out := range outcomes {
		if out.err != nil {
			corpus.Failures = append(corpus.Failures, Failure{Design: out.design, Err: out.err})
			a.emit(telemetry.Event{
				Kind:   telemetry.KindDesignSkipped,
				Design: out.design,
				Data:   map[string]string{"reason": out.err.Error()},
			})
			continue
		}
		corpus.Designs[out.design] = out.result
		a.emit(telemetry.Event{
			Kind:   telemetry.KindDesignAnalyzed,
			Design: out.design,
			Data:   map[string]float64{"total_complexity": out.result.System.TotalComplexity},
		})
	}

	// Recombine keyed results into a deterministic order, ascending by
	// embedded design number, so aggregates never depend on which worker
	// finished first.
	for name := range corpus.Designs {
		corpus.Order = append(corpus.Order, name)
	}
	sort.SliceStable(corpus.Order, func(i, j int) bool {
		ni, nj := design.Number(corpus.Order[i]), design.Number(corpus.Order[j])
		if ni != nj {
			return ni < nj
		}
		return corpus.Order[i] < corpus.Order[j]
	})
	sort.SliceStable(corpus.Failures, func(i, j int) bool {
		return design.Number(corpus.Failures[i].Design) < design.Number(corpus.Failures[j].Design)
	})

	corpus.Stats = corpusStats(corpus)
	return corpus, nil
}

// corpusStats aggregates descriptive statistics over analyzed designs.
func corpusStats(corpus CorpusResult) CorpusStats {
	stats := CorpusStats{DesignCount: len(corpus.Order)}
	types := make(map[string]bool)
	for _, name := range corpus.Order {
		r := corpus.Designs[name]
		stats.TotalNodes += r.Nodes
		stats.TotalEdges += r.Edges
		for _, t := range r.ComponentTypes {
			types[t] = true
		}
	}
	if stats.DesignCount > 0 {
		stats.AvgNodes = float64(stats.TotalNodes) / float64(stats.DesignCount)
		stats.AvgEdges = float64(stats.TotalEdges) / float64(stats.DesignCount)
	}
	stats.ComponentTypes = sortedKeys(types)
	return stats
}

// emit sends a telemetry event with the current timestamp.
func (a *Analyzer) emit(evt telemetry.Event) {
	if a.Emitter == nil {
		return
	}
	_ = a.Emitter.Emit(evt)
}

// sortedKeys returns the keys of a string set in sorted order.
func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
