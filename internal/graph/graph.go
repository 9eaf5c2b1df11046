// Package graph provides the directed multigraph representation of one
// UAV design: typed component nodes connected by typed, directed edges.
// Parallel edges and repeated connections between the same ordered pair
// are permitted. Adjacency is kept explicitly as ordered outgoing and
// incoming edge lists per node, so multiplicity and insertion order are
// preserved for every consumer.
package graph

import (
	"fmt"

	"github.com/finchworks/aviary/internal/design"
)

// Node is one component instance with its descriptor attributes.
type Node struct {
	ID              string
	ComponentType   string
	ComponentChoice string
}

// Edge is one directed connection carrying its connector-port labels
// verbatim from the design record.
type Edge struct {
	From     string
	To       string
	FromPort string
	ToPort   string
}

// Graph is a directed multigraph over component instances.
type Graph struct {
	name  string
	order []string // node insertion order
	nodes map[string]*Node
	out   map[string][]*Edge // per-node outgoing edges, insertion order
	in    map[string][]*Edge // per-node incoming edges, insertion order
	edges []*Edge            // all edges, input connection order
}

// New creates an empty design graph with the given name.
func New(name string) *Graph {
	return &Graph{
		name:  name,
		nodes: make(map[string]*Node),
		out:   make(map[string][]*Edge),
		in:    make(map[string][]*Edge),
	}
}

// Build constructs the design graph for one record. Every component
// becomes a node and every connection a directed multi-edge. A
// connection referencing an unknown component instance fails the whole
// design with a MalformedDesignError; no partial graph is returned.
func Build(designID string, rec design.Record) (*Graph, error) {
	g := New(rec.Name)
	for _, c := range rec.Components {
		g.AddNode(c.Instance, c.Type, c.Choice)
	}
	for _, conn := range rec.Connections {
		if err := g.AddEdge(conn.FromInstance, conn.ToInstance, conn.FromPort, conn.ToPort); err != nil {
			return nil, &design.MalformedDesignError{
				Design: designID,
				Field:  unknownEndpointField(g, conn),
				Err:    fmt.Errorf("%w: %s → %s", design.ErrUnknownComponent, conn.FromInstance, conn.ToInstance),
			}
		}
	}
	return g, nil
}

// unknownEndpointField names the connection field whose endpoint is missing.
func unknownEndpointField(g *Graph, conn design.Connection) string {
	if g.Node(conn.FromInstance) == nil {
		return "from_ci"
	}
	return "to_ci"
}

// AddNode adds a node with the given attributes. A duplicate identifier
// replaces the earlier node's attributes without disturbing edges.
func (g *Graph) AddNode(id, componentType, componentChoice string) {
	if _, exists := g.nodes[id]; !exists {
		g.order = append(g.order, id)
	}
	g.nodes[id] = &Node{
		ID:              id,
		ComponentType:   componentType,
		ComponentChoice: componentChoice,
	}
}

// AddEdge adds a directed edge between two existing nodes. Parallel
// edges and self-loops are permitted; unknown endpoints are an error.
func (g *Graph) AddEdge(from, to, fromPort, toPort string) error {
	if _, ok := g.nodes[from]; !ok {
		return fmt.Errorf("unknown source node %q", from)
	}
	if _, ok := g.nodes[to]; !ok {
		return fmt.Errorf("unknown target node %q", to)
	}
	e := &Edge{From: from, To: to, FromPort: fromPort, ToPort: toPort}
	g.edges = append(g.edges, e)
	g.out[from] = append(g.out[from], e)
	g.in[to] = append(g.in[to], e)
	return nil
}

// Name returns the design name the graph was built from.
func (g *Graph) Name() string { return g.name }

// Node returns the node with the given ID, or nil if not found.
func (g *Graph) Node(id string) *Node { return g.nodes[id] }

// Nodes returns all node IDs in insertion order.
func (g *Graph) Nodes() []string {
	ids := make([]string, len(g.order))
	copy(ids, g.order)
	return ids
}

// Edges returns all edges in input connection order.
func (g *Graph) Edges() []*Edge {
	edges := make([]*Edge, len(g.edges))
	copy(edges, g.edges)
	return edges
}

// Out returns the node's outgoing edges in insertion order.
func (g *Graph) Out(id string) []*Edge { return g.out[id] }

// In returns the node's incoming edges in insertion order.
func (g *Graph) In(id string) []*Edge { return g.in[id] }

// OutDegree counts outgoing edges, including parallel edges.
func (g *Graph) OutDegree(id string) int { return len(g.out[id]) }

// InDegree counts incoming edges, including parallel edges.
func (g *Graph) InDegree(id string) int { return len(g.in[id]) }

// Degree is the total degree: InDegree + OutDegree.
func (g *Graph) Degree(id string) int { return len(g.in[id]) + len(g.out[id]) }

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges returns the edge count, counting parallel edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

// Neighbors returns the deduplicated union of the node's successors and
// predecessors, in first-encountered order. A node linked both ways
// counts once; a self-loop makes a node its own neighbor.
func (g *Graph) Neighbors(id string) []string {
	seen := make(map[string]bool)
	var neighbors []string
	for _, e := range g.out[id] {
		if !seen[e.To] {
			seen[e.To] = true
			neighbors = append(neighbors, e.To)
		}
	}
	for _, e := range g.in[id] {
		if !seen[e.From] {
			seen[e.From] = true
			neighbors = append(neighbors, e.From)
		}
	}
	return neighbors
}
