package complexity

import "github.com/finchworks/aviary/internal/graph"

// NodeResult holds the local complexity metrics for one node.
type NodeResult struct {
	ID            string
	ComponentType string
	Degree        int
	InDegree      int
	OutDegree     int

	// NeighborDiversity is the entropy of the component-type
	// distribution over the node's deduplicated neighbor set.
	NeighborDiversity float64

	// ConnectionDiversity is the entropy of the node's directional
	// connector-port label multiset: from_conn for every edge the node
	// sources, to_conn for every edge it targets. Unlike the neighbor
	// set, multiplicities count.
	ConnectionDiversity float64

	// TotalComplexity is NeighborDiversity + ConnectionDiversity.
	TotalComplexity float64
}

// NodeComplexity computes the local complexity of one node. A node with
// no neighbors has all entropy fields 0.0 by convention; its type and
// degree fields are still populated.
func NodeComplexity(g *graph.Graph, id string) NodeResult {
	r := NodeResult{
		ID:            id,
		ComponentType: g.Node(id).ComponentType,
		Degree:        g.Degree(id),
		InDegree:      g.InDegree(id),
		OutDegree:     g.OutDegree(id),
	}

	neighbors := g.Neighbors(id)
	if len(neighbors) == 0 {
		return r
	}

	typeCounts := make(map[string]int, len(neighbors))
	for _, n := range neighbors {
		typeCounts[g.Node(n).ComponentType]++
	}
	r.NeighborDiversity = entropyOfCounts(typeCounts)

	portCounts := make(map[string]int)
	for _, e := range g.Out(id) {
		portCounts[e.FromPort]++
	}
	for _, e := range g.In(id) {
		portCounts[e.ToPort]++
	}
	r.ConnectionDiversity = entropyOfCounts(portCounts)

	r.TotalComplexity = r.NeighborDiversity + r.ConnectionDiversity
	return r
}

// AllNodeComplexities computes the local complexity of every node in
// the graph. Each node's computation is independent; the fold shares no
// mutable state across nodes.
func AllNodeComplexities(g *graph.Graph) map[string]NodeResult {
	results := make(map[string]NodeResult, g.NumNodes())
	for _, id := range g.Nodes() {
		results[id] = NodeComplexity(g, id)
	}
	return results
}
