package cmd

import (
	"github.com/spf13/cobra"

	"github.com/finchworks/aviary/internal/complexity"
	"github.com/finchworks/aviary/internal/config"
	"github.com/finchworks/aviary/internal/design"
	"github.com/finchworks/aviary/internal/telemetry"
	"github.com/finchworks/aviary/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch [data-dir]",
	Short: "Re-analyze the corpus whenever a design record changes",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	printer := ui.New()
	cfg := config.Load()

	dataDir := cfg.DataDir
	if len(args) > 0 {
		dataDir = args[0]
	}

	var emitter *telemetry.Emitter
	if cfg.TelemetryPath != "" {
		var err error
		emitter, err = telemetry.NewEmitter(cfg.TelemetryPath)
		if err != nil {
			printer.Error(err.Error())
			return err
		}
		defer emitter.Close()
	}

	analyzer := &complexity.Analyzer{Workers: cfg.Workers, Emitter: emitter}
	reanalyze := func() {
		corpus, err := analyzer.AnalyzeCorpus(dataDir)
		if err != nil {
			printer.Error(err.Error())
			return
		}
		for _, name := range corpus.Order {
			printer.DesignLine(corpus.Designs[name])
		}
		for _, f := range corpus.Failures {
			printer.DesignSkipped(f.Design, f.Err)
		}
		summary, err := complexity.Summarize(corpus)
		if err != nil {
			printer.Error(err.Error())
			return
		}
		printer.Summary(summary)
	}

	printer.Banner()
	reanalyze()

	watcher, err := design.NewWatcher(dataDir)
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	if err := watcher.Start(); err != nil {
		printer.Error(err.Error())
		return err
	}
	defer watcher.Stop()

	printer.Info("watching " + dataDir + " — ctrl+c to stop")
	for change := range watcher.Changes {
		printer.WatchTriggered(change.Design)
		_ = emitter.Emit(telemetry.Event{
			Kind:   telemetry.KindWatchTriggered,
			Design: change.Design,
		})
		reanalyze()
	}
	return nil
}
