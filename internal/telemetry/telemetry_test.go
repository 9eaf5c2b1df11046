package telemetry

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func readEvents(t *testing.T, path string) []Event {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var evt Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			t.Fatalf("bad JSONL line %q: %v", scanner.Text(), err)
		}
		events = append(events, evt)
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}
	return events
}

func TestEmitterWritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.jsonl")
	em, err := NewEmitter(path)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}

	if err := em.Emit(Event{Kind: KindCorpusScan, Data: map[string]int{"designs": 30}}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := em.Emit(Event{Kind: KindDesignAnalyzed, Design: "design_5"}); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if err := em.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	events := readEvents(t, path)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Kind != KindCorpusScan {
		t.Errorf("first kind = %q, want %q", events[0].Kind, KindCorpusScan)
	}
	if events[1].Design != "design_5" {
		t.Errorf("second design = %q, want design_5", events[1].Design)
	}
	for i, evt := range events {
		if evt.Timestamp.IsZero() {
			t.Errorf("event %d missing timestamp", i)
		}
	}
}

func TestEmitterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.jsonl")

	for range 2 {
		em, err := NewEmitter(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := em.Emit(Event{Kind: KindWatchTriggered}); err != nil {
			t.Fatal(err)
		}
		if err := em.Close(); err != nil {
			t.Fatal(err)
		}
	}

	if got := len(readEvents(t, path)); got != 2 {
		t.Errorf("got %d events after two sessions, want 2", got)
	}
}

func TestEmitterConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.jsonl")
	em, err := NewEmitter(path)
	if err != nil {
		t.Fatal(err)
	}

	const n = 50
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = em.Emit(Event{Kind: KindDesignAnalyzed, Data: map[string]int{"i": i}})
		}()
	}
	wg.Wait()
	if err := em.Close(); err != nil {
		t.Fatal(err)
	}

	// Every line must still be a complete JSON document.
	if got := len(readEvents(t, path)); got != n {
		t.Errorf("got %d events, want %d", got, n)
	}
}

func TestNilEmitterIsNoOp(t *testing.T) {
	var em *Emitter
	if err := em.Emit(Event{Kind: KindCorpusScan}); err != nil {
		t.Errorf("nil Emit returned %v", err)
	}
	if err := em.Close(); err != nil {
		t.Errorf("nil Close returned %v", err)
	}
}
