package graph

import (
	"errors"
	"testing"

	"github.com/finchworks/aviary/internal/design"
)

// quadRecord builds a small quad-like design: a hub feeding two arms,
// with a reverse edge from one arm back to the hub and a parallel edge.
func quadRecord() design.Record {
	return design.Record{
		Name: "quad",
		Components: []design.ComponentSpec{
			{Instance: "hub_0", Type: "MainHub", Choice: "Hub4"},
			{Instance: "arm_0", Type: "Arm", Choice: "Arm250"},
			{Instance: "arm_1", Type: "Arm", Choice: "Arm250"},
			{Instance: "sensor_0", Type: "Sensor", Choice: "GPS"},
		},
		Connections: []design.Connection{
			{FromInstance: "hub_0", ToInstance: "arm_0", FromPort: "Side_1", ToPort: "Base"},
			{FromInstance: "hub_0", ToInstance: "arm_1", FromPort: "Side_2", ToPort: "Base"},
			{FromInstance: "arm_0", ToInstance: "hub_0", FromPort: "Base", ToPort: "Side_1"},
			{FromInstance: "hub_0", ToInstance: "arm_0", FromPort: "Side_3", ToPort: "Aux"},
		},
	}
}

func buildQuad(t *testing.T) *Graph {
	t.Helper()
	g, err := Build("design_1", quadRecord())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

func TestBuild(t *testing.T) {
	g := buildQuad(t)

	if g.Name() != "quad" {
		t.Errorf("Name = %q, want %q", g.Name(), "quad")
	}
	if g.NumNodes() != 4 {
		t.Errorf("NumNodes = %d, want 4", g.NumNodes())
	}
	if g.NumEdges() != 4 {
		t.Errorf("NumEdges = %d, want 4", g.NumEdges())
	}

	hub := g.Node("hub_0")
	if hub == nil || hub.ComponentType != "MainHub" || hub.ComponentChoice != "Hub4" {
		t.Errorf("hub_0 = %+v, want MainHub/Hub4", hub)
	}
}

func TestBuildPreservesEdgeOrder(t *testing.T) {
	g := buildQuad(t)

	wantPorts := []string{"Side_1", "Side_2", "Base", "Side_3"}
	edges := g.Edges()
	if len(edges) != len(wantPorts) {
		t.Fatalf("got %d edges, want %d", len(edges), len(wantPorts))
	}
	for i, e := range edges {
		if e.FromPort != wantPorts[i] {
			t.Errorf("edges[%d].FromPort = %q, want %q", i, e.FromPort, wantPorts[i])
		}
	}
}

func TestBuildUnknownEndpoint(t *testing.T) {
	rec := quadRecord()
	rec.Connections = append(rec.Connections, design.Connection{
		FromInstance: "hub_0", ToInstance: "ghost", FromPort: "Side_4", ToPort: "Base",
	})

	_, err := Build("design_1", rec)
	if !errors.Is(err, design.ErrUnknownComponent) {
		t.Fatalf("err = %v, want ErrUnknownComponent", err)
	}
	var malformed *design.MalformedDesignError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %T, want *MalformedDesignError", err)
	}
	if malformed.Design != "design_1" {
		t.Errorf("Design = %q, want %q", malformed.Design, "design_1")
	}
	if malformed.Field != "to_ci" {
		t.Errorf("Field = %q, want %q", malformed.Field, "to_ci")
	}
}

func TestDegreeIdentity(t *testing.T) {
	g := buildQuad(t)

	for _, id := range g.Nodes() {
		if got, want := g.Degree(id), g.InDegree(id)+g.OutDegree(id); got != want {
			t.Errorf("Degree(%s) = %d, want in+out = %d", id, got, want)
		}
	}

	// Parallel edges count toward degree.
	if got := g.Degree("arm_0"); got != 4 {
		t.Errorf("Degree(arm_0) = %d, want 4 (2 in + 1 parallel in + 1 out)", got)
	}
	if got := g.OutDegree("hub_0"); got != 3 {
		t.Errorf("OutDegree(hub_0) = %d, want 3", got)
	}
}

func TestNeighborsDeduplicates(t *testing.T) {
	g := buildQuad(t)

	// hub_0 and arm_0 are connected in both directions and by a
	// parallel edge; arm_0 must appear exactly once.
	neighbors := g.Neighbors("hub_0")
	seen := make(map[string]int)
	for _, n := range neighbors {
		seen[n]++
	}
	if seen["arm_0"] != 1 {
		t.Errorf("arm_0 appears %d times in Neighbors(hub_0), want 1", seen["arm_0"])
	}
	if len(neighbors) != 2 {
		t.Errorf("Neighbors(hub_0) = %v, want 2 unique neighbors", neighbors)
	}

	// Isolated node has no neighbors.
	if n := g.Neighbors("sensor_0"); len(n) != 0 {
		t.Errorf("Neighbors(sensor_0) = %v, want none", n)
	}
}

func TestSelfLoop(t *testing.T) {
	g := New("loop")
	g.AddNode("a", "Hub", "H1")
	if err := g.AddEdge("a", "a", "p1", "p2"); err != nil {
		t.Fatalf("AddEdge: %v", err)
	}

	if got := g.Degree("a"); got != 2 {
		t.Errorf("Degree(a) = %d, want 2 (self-loop counts both ends)", got)
	}
	neighbors := g.Neighbors("a")
	if len(neighbors) != 1 || neighbors[0] != "a" {
		t.Errorf("Neighbors(a) = %v, want [a]", neighbors)
	}
}

func TestAddNodeDuplicateReplacesAttributes(t *testing.T) {
	g := New("d")
	g.AddNode("a", "Arm", "Arm250")
	g.AddNode("a", "Arm", "Arm300")

	if g.NumNodes() != 1 {
		t.Fatalf("NumNodes = %d, want 1", g.NumNodes())
	}
	if got := g.Node("a").ComponentChoice; got != "Arm300" {
		t.Errorf("ComponentChoice = %q, want %q", got, "Arm300")
	}
}
