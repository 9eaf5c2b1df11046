package cmd

import (
	"github.com/spf13/cobra"

	"github.com/finchworks/aviary/internal/complexity"
	"github.com/finchworks/aviary/internal/config"
	"github.com/finchworks/aviary/internal/store"
	"github.com/finchworks/aviary/internal/ui"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [data-dir]",
	Short: "Corpus-wide complexity statistics",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSummary,
}

func init() {
	summaryCmd.Flags().Bool("history", false, "also show previous runs from results.toml")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	printer := ui.New()
	cfg := config.Load()

	dataDir := cfg.DataDir
	if len(args) > 0 {
		dataDir = args[0]
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

	summary, err := complexity.Summarize(corpus)
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	printer.Summary(summary)
	printer.CorpusStats(corpus.Stats)

	if showHistory, _ := cmd.Flags().GetBool("history"); showHistory {
		history, err := store.LoadHistory(cfg.ResultsDir)
		if err != nil {
			printer.Error(err.Error())
			return err
		}
		for _, h := range history {
			printer.Info(h.AnalyzedAt.Format("2006-01-02 15:04") +
				"  mean " + formatFloat(h.MeanTotal) +
				"  min " + formatFloat(h.MinTotal) +
				"  max " + formatFloat(h.MaxTotal))
		}
	}
	return nil
}
