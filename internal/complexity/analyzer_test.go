package complexity

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/finchworks/aviary/internal/design"
)

// writeCorpusDesign drops one design directory with the given record
// payload under root.
func writeCorpusDesign(t *testing.T, root, name, payload string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, design.RecordFileName), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
}

func quadPayload(name string) string {
	return fmt.Sprintf(`{
  "name": %q,
  "components": [
    {"component_instance": "hub", "component_type": "MainHub", "component_choice": "Hub4"},
    {"component_instance": "arm_0", "component_type": "Arm", "component_choice": "Arm220"},
    {"component_instance": "battery", "component_type": "Battery", "component_choice": "LiPo4S"}
  ],
  "connections": [
    {"from_ci": "hub", "to_ci": "arm_0", "from_conn": "Side_1", "to_conn": "Base"},
    {"from_ci": "arm_0", "to_ci": "hub", "from_conn": "Base", "to_conn": "Side_1"},
    {"from_ci": "hub", "to_ci": "battery", "from_conn": "Bottom", "to_conn": "Mount"}
  ]
}`, name)
}

const brokenPayload = `{
  "components": [
    {"component_instance": "hub", "component_type": "MainHub"}
  ],
  "connections": [
    {"from_ci": "hub", "to_ci": "ghost", "from_conn": "Side_1", "to_conn": "Base"}
  ]
}`

func TestAnalyzeDesign(t *testing.T) {
	var rec design.Record
	loadPayload(t, quadPayload("quad"), &rec)

	r, err := AnalyzeDesign("design_3", rec)
	if err != nil {
		t.Fatalf("AnalyzeDesign: %v", err)
	}
	if r.Design != "design_3" || r.Name != "quad" || r.Number != 3 {
		t.Errorf("identity = %q/%q/%d, want design_3/quad/3", r.Design, r.Name, r.Number)
	}
	if r.Nodes != 3 || r.Edges != 3 {
		t.Errorf("Nodes/Edges = %d/%d, want 3/3", r.Nodes, r.Edges)
	}
	if want := []string{"Arm", "Battery", "MainHub"}; !reflect.DeepEqual(r.ComponentTypes, want) {
		t.Errorf("ComponentTypes = %v, want %v", r.ComponentTypes, want)
	}
	// hub→arm_0 / arm_0→hub form one reciprocal pair; hub→battery is one-way.
	if r.Reciprocal != 1 || r.OneWay != 1 {
		t.Errorf("Reciprocal/OneWay = %d/%d, want 1/1", r.Reciprocal, r.OneWay)
	}
	// Side_1→Base, Base→Side_1, Bottom→Mount
	if r.ConnTypeCount != 3 {
		t.Errorf("ConnTypeCount = %d, want 3", r.ConnTypeCount)
	}
	if len(r.NodeScores) != 3 {
		t.Errorf("NodeScores has %d entries, want 3", len(r.NodeScores))
	}
	if got := r.System.HDiversity + r.System.HFlexibility + r.System.HCombinability; r.System.TotalComplexity != got {
		t.Errorf("System.TotalComplexity = %v, want %v", r.System.TotalComplexity, got)
	}
}

func TestAnalyzeDesignUnknownEndpoint(t *testing.T) {
	var rec design.Record
	loadPayload(t, brokenPayload, &rec)

	_, err := AnalyzeDesign("design_9", rec)
	if !errors.Is(err, design.ErrUnknownComponent) {
		t.Fatalf("err = %v, want ErrUnknownComponent", err)
	}
	var malformed *design.MalformedDesignError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %T, want *MalformedDesignError", err)
	}
	if malformed.Design != "design_9" {
		t.Errorf("Design = %q, want design_9", malformed.Design)
	}
}

func TestAnalyzeCorpusSkipsMalformed(t *testing.T) {
	root := t.TempDir()
	writeCorpusDesign(t, root, "design_1", quadPayload("first"))
	writeCorpusDesign(t, root, "design_2", brokenPayload)
	writeCorpusDesign(t, root, "design_10", quadPayload("tenth"))

	a := &Analyzer{Workers: 2}
	corpus, err := a.AnalyzeCorpus(root)
	if err != nil {
		t.Fatalf("AnalyzeCorpus: %v", err)
	}

	// The malformed design is reported, not fatal.
	if want := []string{"design_1", "design_10"}; !reflect.DeepEqual(corpus.Order, want) {
		t.Errorf("Order = %v, want %v", corpus.Order, want)
	}
	if len(corpus.Failures) != 1 || corpus.Failures[0].Design != "design_2" {
		t.Fatalf("Failures = %+v, want one failure for design_2", corpus.Failures)
	}
	if !errors.Is(corpus.Failures[0].Err, design.ErrUnknownComponent) {
		t.Errorf("failure err = %v, want ErrUnknownComponent", corpus.Failures[0].Err)
	}

	if corpus.Stats.DesignCount != 2 || corpus.Stats.TotalNodes != 6 || corpus.Stats.TotalEdges != 6 {
		t.Errorf("Stats = %+v, want 2 designs with 6 nodes and 6 edges", corpus.Stats)
	}
	if corpus.Stats.AvgNodes != 3.0 || corpus.Stats.AvgEdges != 3.0 {
		t.Errorf("Stats averages = %v/%v, want 3.0", corpus.Stats.AvgNodes, corpus.Stats.AvgEdges)
	}
	if want := []string{"Arm", "Battery", "MainHub"}; !reflect.DeepEqual(corpus.Stats.ComponentTypes, want) {
		t.Errorf("Stats.ComponentTypes = %v, want %v", corpus.Stats.ComponentTypes, want)
	}
}

func TestAnalyzeCorpusOrderByNumber(t *testing.T) {
	root := t.TempDir()
	for _, n := range []string{"design_12", "design_2", "design_1", "design_30"} {
		writeCorpusDesign(t, root, n, quadPayload(n))
	}

	a := &Analyzer{Workers: 4}
	corpus, err := a.AnalyzeCorpus(root)
	if err != nil {
		t.Fatalf("AnalyzeCorpus: %v", err)
	}
	want := []string{"design_1", "design_2", "design_12", "design_30"}
	if !reflect.DeepEqual(corpus.Order, want) {
		t.Errorf("Order = %v, want %v", corpus.Order, want)
	}
}

func TestAnalyzeCorpusParallelMatchesSequential(t *testing.T) {
	root := t.TempDir()
	for i := range 8 {
		writeCorpusDesign(t, root, fmt.Sprintf("design_%d", i), quadPayload(fmt.Sprintf("d%d", i)))
	}

	seq, err := (&Analyzer{Workers: 1}).AnalyzeCorpus(root)
	if err != nil {
		t.Fatal(err)
	}
	par, err := (&Analyzer{Workers: 8}).AnalyzeCorpus(root)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(seq.Order, par.Order) {
		t.Errorf("order differs: %v vs %v", seq.Order, par.Order)
	}
	for _, name := range seq.Order {
		if seq.Designs[name].System != par.Designs[name].System {
			t.Errorf("%s: system entropies differ across worker counts", name)
		}
	}
}

func TestAnalyzeCorpusEmptyRoot(t *testing.T) {
	a := &Analyzer{}
	corpus, err := a.AnalyzeCorpus(t.TempDir())
	if err != nil {
		t.Fatalf("AnalyzeCorpus: %v", err)
	}
	if len(corpus.Order) != 0 || len(corpus.Failures) != 0 {
		t.Errorf("empty root yielded %d designs, %d failures", len(corpus.Order), len(corpus.Failures))
	}
}

// loadPayload round-trips a JSON payload through the record loader path
// used in production: unmarshal then validate.
func loadPayload(t *testing.T, payload string, rec *design.Record) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, design.RecordFileName), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}
	loaded, err := design.LoadRecord(dir)
	if err != nil {
		t.Fatal(err)
	}
	*rec = loaded
}
