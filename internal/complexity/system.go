package complexity

import "github.com/finchworks/aviary/internal/graph"

// SystemResult holds the five system-wide entropies for one design.
// TotalComplexity aggregates diversity, flexibility, and combinability
// only; the in/out-degree entropies are reported but deliberately
// excluded from the aggregate.
type SystemResult struct {
	HDiversity      float64 // component-type distribution over nodes
	HFlexibility    float64 // pooled connector-port labels, two per edge
	HCombinability  float64 // total-degree distribution over nodes
	HInDegree       float64 // in-degree distribution over nodes
	HOutDegree      float64 // out-degree distribution over nodes
	TotalComplexity float64 // HDiversity + HFlexibility + HCombinability
}

// SystemEntropies computes the system-level entropy metrics for one
// design graph. All distributions are empirical: category counts
// divided by the number of observations. Degenerate cases (a single
// node, zero edges) yield 0.0 entropies, not errors.
func SystemEntropies(g *graph.Graph) SystemResult {
	typeCounts := make(map[string]int)
	degreeCounts := make(map[int]int)
	inCounts := make(map[int]int)
	outCounts := make(map[int]int)
	for _, id := range g.Nodes() {
		typeCounts[g.Node(id).ComponentType]++
		degreeCounts[g.Degree(id)]++
		inCounts[g.InDegree(id)]++
		outCounts[g.OutDegree(id)]++
	}

	// Both port labels of every edge pool into one shared distribution:
	// each connection contributes two observations.
	portCounts := make(map[string]int)
	for _, e := range g.Edges() {
		portCounts[e.FromPort]++
		portCounts[e.ToPort]++
	}

	r := SystemResult{
		HDiversity:     entropyOfCounts(typeCounts),
		HFlexibility:   entropyOfCounts(portCounts),
		HCombinability: entropyOfCounts(degreeCounts),
		HInDegree:      entropyOfCounts(inCounts),
		HOutDegree:     entropyOfCounts(outCounts),
	}
	r.TotalComplexity = r.HDiversity + r.HFlexibility + r.HCombinability
	return r
}
