package cmd

import (
	"github.com/spf13/cobra"

	"github.com/finchworks/aviary/internal/complexity"
	"github.com/finchworks/aviary/internal/config"
	"github.com/finchworks/aviary/internal/tui"
	"github.com/finchworks/aviary/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [data-dir]",
	Short: "Browse per-design and per-node complexity interactively",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
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

	return tui.Run(corpus)
}
