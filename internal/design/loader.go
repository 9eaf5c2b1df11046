package design

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// RecordFileName is the per-design payload file inside each design directory.
const RecordFileName = "design_low_level.json"

// designDirPrefix identifies design directories under the corpus root.
const designDirPrefix = "design_"

// numberSentinel sorts designs with non-standard names after all
// conventionally numbered ones.
const numberSentinel = 999

// LoadRecord reads and validates the record for one design directory.
// The design identifier reported in errors is the directory name.
func LoadRecord(dir string) (Record, error) {
	designID := filepath.Base(dir)

	data, err := os.ReadFile(filepath.Join(dir, RecordFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return Record{}, &MalformedDesignError{Design: designID, Err: ErrNoRecord}
		}
		return Record{}, fmt.Errorf("reading %s: %w", RecordFileName, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("%s: parsing %s: %w", designID, RecordFileName, err)
	}
	if rec.Name == "" {
		rec.Name = designID
	}
	if err := rec.Validate(designID); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Number extracts the integer index embedded in a design name
// ("design_7" → 7, "design_7_rev2" → 7). Names without a parseable
// index sort last via a large sentinel.
func Number(name string) int {
	rest, ok := strings.CutPrefix(filepath.Base(name), designDirPrefix)
	if !ok {
		return numberSentinel
	}
	numStr, _, _ := strings.Cut(rest, "_")
	n, err := strconv.Atoi(numStr)
	if err != nil {
		return numberSentinel
	}
	return n
}

// ScanCorpus returns the design directories under root, sorted ascending
// by embedded design number. Only directories named design_* are
// considered part of the corpus.
func ScanCorpus(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("reading corpus root: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), designDirPrefix) {
			dirs = append(dirs, filepath.Join(root, e.Name()))
		}
	}
	sort.SliceStable(dirs, func(i, j int) bool {
		return Number(dirs[i]) < Number(dirs[j])
	})
	return dirs, nil
}
