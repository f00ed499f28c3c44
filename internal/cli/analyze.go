package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/nlitools/slicereport/internal/model"
	"github.com/nlitools/slicereport/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	labelMap         string
	showExamples     bool
	examplesPerSlice int
	showConfusions   bool
	topConfusions    int
	noCache          bool
	outJSON          string
	outMD            string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <pred_file>",
	Short: "Analyze a prediction file and report accuracy by slice",
	Long: `Analyze reads a JSONL prediction file and reports:
- Overall accuracy over all scored examples
- Accuracy per negation, hypothesis-length, and lexical-overlap slice
- Optionally, example mistakes from the weakest slice of each dimension
- Optionally, the most frequent (gold, predicted) confusions

Lines missing a gold or predicted label are skipped from scoring.

Example:
  slicereport analyze preds.jsonl
  slicereport analyze preds.jsonl --show-examples --show-confusions
  slicereport analyze preds.jsonl --label-map "0:entail,1:neutral,2:contra"
  slicereport analyze preds.jsonl --json report.json --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Slicing flags
	analyzeCmd.Flags().StringVar(&labelMap, "label-map", model.DefaultConfig().Labels.Map, "label id to name mapping, e.g. '0:entailment,1:neutral,2:contradiction'")
	analyzeCmd.Flags().BoolVar(&showExamples, "show-examples", false, "show example mistakes from the weakest slice per dimension")
	analyzeCmd.Flags().IntVar(&examplesPerSlice, "examples-per-slice", 3, "max example mistakes stored per slice")
	analyzeCmd.Flags().BoolVar(&showConfusions, "show-confusions", false, "show the most frequent (gold, predicted) confusions")
	analyzeCmd.Flags().IntVar(&topConfusions, "top-confusions", 10, "max confusion pairs to show")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable token-set memoization")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "also write the report as JSON to this path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "also write the report as Markdown to this path")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx := context.Background()

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Labels.Map = labelMap
	cfg.Report.ShowExamples = showExamples
	cfg.Report.ExamplesPerSlice = examplesPerSlice
	cfg.Report.ShowConfusions = showConfusions
	cfg.Report.TopConfusions = topConfusions
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose

	labels, err := model.ParseLabelMap(cfg.Labels.Map)
	if err != nil {
		return fmt.Errorf("parse label map: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)
	report, err := p.AnalyzeFile(ctx, path)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Scored %d examples (%d skipped)\n", report.Scored, report.Skipped)
		fmt.Fprintln(os.Stderr)
	}

	renderer := pipeline.NewRenderer(os.Stdout, labels, cfg.Report)
	renderer.RenderSummary(report)

	if outJSON != "" {
		if err := renderer.RenderJSON(report, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote JSON: %s\n", outJSON)
		}
	}
	if outMD != "" {
		if err := renderer.RenderMarkdown(report, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", outMD)
		}
	}

	return nil
}
