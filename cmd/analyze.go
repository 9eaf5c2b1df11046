package cmd

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/finchworks/aviary/internal/complexity"
	"github.com/finchworks/aviary/internal/config"
	"github.com/finchworks/aviary/internal/store"
	"github.com/finchworks/aviary/internal/telemetry"
	"github.com/finchworks/aviary/internal/ui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [data-dir]",
	Short: "Analyze every design in the corpus",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "output results as JSON to stdout")
	analyzeCmd.Flags().Int("workers", 0, "analysis worker count (0 = config default)")
	analyzeCmd.Flags().Bool("results", false, "write results.toml to the results directory")
	analyzeCmd.Flags().Bool("store", false, "archive the run in the SQLite results database")
	analyzeCmd.Flags().String("telemetry", "", "append JSONL telemetry events to this file")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	printer := ui.New()
	cfg := config.Load()

	dataDir := cfg.DataDir
	if len(args) > 0 {
		dataDir = args[0]
	}
	workers := cfg.Workers
	if n, _ := cmd.Flags().GetInt("workers"); n > 0 {
		workers = n
	}
	telemetryPath := cfg.TelemetryPath
	if path, _ := cmd.Flags().GetString("telemetry"); path != "" {
		telemetryPath = path
	}

	var emitter *telemetry.Emitter
	if telemetryPath != "" {
		var err error
		emitter, err = telemetry.NewEmitter(telemetryPath)
		if err != nil {
			printer.Error(err.Error())
			return err
		}
		defer emitter.Close()
	}

	printer.Banner()

	analyzer := &complexity.Analyzer{Workers: workers, Emitter: emitter}
	corpus, err := analyzer.AnalyzeCorpus(dataDir)
	if err != nil {
		printer.Error(err.Error())
		return err
	}

	printer.CorpusFound(len(corpus.Order) + len(corpus.Failures))
	for _, name := range corpus.Order {
		printer.DesignLine(corpus.Designs[name])
	}
	for _, f := range corpus.Failures {
		printer.DesignSkipped(f.Design, f.Err)
	}

	summary, err := complexity.SummarizeWithTelemetry(corpus, emitter)
	if err != nil {
		printer.Error(err.Error())
		return err
	}
	printer.Summary(summary)
	printer.CorpusStats(corpus.Stats)

	if save, _ := cmd.Flags().GetBool("results"); save {
		if err := store.SaveResults(cfg.ResultsDir, corpus, summary); err != nil {
			printer.Error(err.Error())
			return err
		}
		printer.Info("results.toml written to " + cfg.ResultsDir)
	}

	if archive, _ := cmd.Flags().GetBool("store"); archive {
		path := cfg.ArchivePath
		if path == "" {
			path = "aviary.db"
		}
		if err := archiveRun(cmd.Context(), path, corpus, summary); err != nil {
			printer.Error(err.Error())
			return err
		}
		printer.Info("run archived to " + path)
	}

	if jsonFlag, _ := cmd.Flags().GetBool("json"); jsonFlag {
		return writeAnalysisJSON(os.Stdout, corpus, summary)
	}
	return nil
}

// archiveRun opens the SQLite archive, saves one run, and closes it.
func archiveRun(ctx context.Context, path string, corpus complexity.CorpusResult, summary complexity.Summary) error {
	archive, err := store.NewArchive(ctx, path)
	if err != nil {
		return err
	}
	defer archive.Close()
	_, err = archive.SaveRun(ctx, corpus, summary)
	return err
}

// analysisJSON is the structured representation of a run for --json output.
type analysisJSON struct {
	Designs  []designJSON  `json:"designs"`
	Skipped  []skippedJSON `json:"skipped,omitempty"`
	Summary  summaryJSON   `json:"summary"`
	Nodes    int           `json:"total_nodes"`
	Edges    int           `json:"total_edges"`
	TypeList []string      `json:"component_types"`
}

type designJSON struct {
	Design          string  `json:"design"`
	Number          int     `json:"number"`
	Nodes           int     `json:"nodes"`
	Edges           int     `json:"edges"`
	HDiversity      float64 `json:"h_diversity"`
	HFlexibility    float64 `json:"h_flexibility"`
	HCombinability  float64 `json:"h_combinability"`
	HInDegree       float64 `json:"h_in_degree"`
	HOutDegree      float64 `json:"h_out_degree"`
	TotalComplexity float64 `json:"total_complexity"`
}

type skippedJSON struct {
	Design string `json:"design"`
	Reason string `json:"reason"`
}

type summaryJSON struct {
	Designs int     `json:"designs"`
	Mean    float64 `json:"mean_total"`
	Std     float64 `json:"std_total"`
	Min     float64 `json:"min_total"`
	Max     float64 `json:"max_total"`
}

func writeAnalysisJSON(w io.Writer, corpus complexity.CorpusResult, summary complexity.Summary) error {
	out := analysisJSON{
		Nodes:    corpus.Stats.TotalNodes,
		Edges:    corpus.Stats.TotalEdges,
		TypeList: corpus.Stats.ComponentTypes,
		Summary: summaryJSON{
			Designs: summary.Designs,
			Mean:    summary.TotalComplexity.Mean,
			Std:     summary.TotalComplexity.Std,
			Min:     summary.Min,
			Max:     summary.Max,
		},
	}
	for _, name := range corpus.Order {
		r := corpus.Designs[name]
		out.Designs = append(out.Designs, designJSON{
			Design:          r.Design,
			Number:          r.Number,
			Nodes:           r.Nodes,
			Edges:           r.Edges,
			HDiversity:      r.System.HDiversity,
			HFlexibility:    r.System.HFlexibility,
			HCombinability:  r.System.HCombinability,
			HInDegree:       r.System.HInDegree,
			HOutDegree:      r.System.HOutDegree,
			TotalComplexity: r.System.TotalComplexity,
		})
	}
	for _, f := range corpus.Failures {
		out.Skipped = append(out.Skipped, skippedJSON{Design: f.Design, Reason: f.Err.Error()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
