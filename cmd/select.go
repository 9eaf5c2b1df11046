package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finchworks/aviary/internal/complexity"
	"github.com/finchworks/aviary/internal/config"
	"github.com/finchworks/aviary/internal/ui"
)

var selectCmd = &cobra.Command{
	Use:   "select [data-dir]",
	Short: "Report representative designs by label",
	Long: "Select reports the configured representative designs (e.g. \"Highest Complexity\" → design 5)\n" +
		"with their descriptive statistics and uncertainty score. Labels whose design number is\n" +
		"absent from the corpus produce a warning and are omitted.",
	Args: cobra.MaximumNArgs(1),
	RunE: runSelect,
}

func init() {
	selectCmd.Flags().StringArray("design", nil, "override a selection as label=number (repeatable)")
	rootCmd.AddCommand(selectCmd)
}

func runSelect(cmd *cobra.Command, args []string) error {
	printer := ui.New()
	cfg := config.Load()

	dataDir := cfg.DataDir
	if len(args) > 0 {
		dataDir = args[0]
	}

	selections := cfg.Selections
	if len(selections) == 0 {
		selections = complexity.DefaultSelections()
	}
	overrides, _ := cmd.Flags().GetStringArray("design")
	if len(overrides) > 0 {
		parsed, err := parseSelections(overrides)
		if err != nil {
			printer.Error(err.Error())
			return err
		}
		selections = parsed
	}

	analyzer := &complexity.Analyzer{Workers: cfg.Workers}
	corpus, err := analyzer.AnalyzeCorpus(dataDir)
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	for _, f := range corpus.Failures {
		printer.DesignSkipped(f.Design, f.Err)
	}

	selected, missing := complexity.SelectRepresentatives(corpus, selections)
	for _, sel := range selected {
		printer.Selection(sel)
	}
	for _, label := range missing {
		printer.MissingSelection(label)
	}
	return nil
}

// parseSelections turns repeated "label=number" flags into a selection map.
func parseSelections(pairs []string) (map[string]int, error) {
	selections := make(map[string]int, len(pairs))
	for _, pair := range pairs {
		label, numStr, ok := strings.Cut(pair, "=")
		if !ok || label == "" {
			return nil, fmt.Errorf("invalid --design %q: want label=number", pair)
		}
		n, err := strconv.Atoi(numStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --design %q: %w", pair, err)
		}
		selections[label] = n
	}
	return selections, nil
}

// formatFloat renders a metric with three decimals for terse reports.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
