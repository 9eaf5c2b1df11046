package complexity

import "sort"

// DefaultSelections maps the conventional representative labels to
// their design numbers.
func DefaultSelections() map[string]int {
	return map[string]int{
		"Least Complexity":             1,
		"Medium Complexity":            14,
		"Highest Complexity":           5,
		"Most Uncertain/Non-Classical": 12,
	}
}

// Selection is one representative design chosen for detailed analysis,
// with its descriptive counts and uncertainty score.
type Selection struct {
	Label  string
	Design string
	Number int

	Nodes         int
	Edges         int
	TypeCount     int // distinct component types
	ConnTypeCount int // distinct from→to port pairings
	Reciprocal    int // reciprocal edge pairs
	OneWay        int // edges with no reverse counterpart

	// UncertaintyScore mixes the raw type and connection-type counts
	// with the reciprocal-to-edge ratio. The formula is preserved as
	// observed in the reference analysis; it is not rescaled.
	UncertaintyScore float64

	System SystemResult
}

// SelectRepresentatives picks designs from the corpus by an external
// label→design-number mapping. Labels whose number is absent from the
// corpus are recoverable: they are returned in missing and simply
// omitted from the selection. Selections are ordered by design number,
// with the label as tiebreaker; missing labels are sorted.
func SelectRepresentatives(corpus CorpusResult, selections map[string]int) (selected []Selection, missing []string) {
	byNumber := make(map[int]string, len(corpus.Order))
	for _, name := range corpus.Order {
		byNumber[corpus.Designs[name].Number] = name
	}

	for label, number := range selections {
		name, ok := byNumber[number]
		if !ok {
			missing = append(missing, label)
			continue
		}
		r := corpus.Designs[name]

		edges := r.Edges
		if edges < 1 {
			edges = 1
		}
		score := float64(len(r.ComponentTypes)) + float64(r.ConnTypeCount) +
			float64(r.Reciprocal)/float64(edges)

		selected = append(selected, Selection{
			Label:            label,
			Design:           name,
			Number:           r.Number,
			Nodes:            r.Nodes,
			Edges:            r.Edges,
			TypeCount:        len(r.ComponentTypes),
			ConnTypeCount:    r.ConnTypeCount,
			Reciprocal:       r.Reciprocal,
			OneWay:           r.OneWay,
			UncertaintyScore: score,
			System:           r.System,
		})
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].Number != selected[j].Number {
			return selected[i].Number < selected[j].Number
		}
		return selected[i].Label < selected[j].Label
	})
	sort.Strings(missing)
	return selected, missing
}
