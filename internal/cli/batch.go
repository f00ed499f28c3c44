package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/nlitools/slicereport/internal/model"
	"github.com/nlitools/slicereport/internal/pipeline"
	"github.com/nlitools/slicereport/internal/worker"
	"github.com/spf13/cobra"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <list_file>",
	Short: "Analyze multiple prediction files in parallel",
	Long: `Batch analyzes multiple prediction files concurrently:
- Read prediction-file paths from a list file (one per line)
- Analyze files in parallel with a configurable worker count
- Write a JSON and Markdown report per prediction file

Example:
  slicereport batch runs.txt
  slicereport batch runs.txt --concurrency 8 --output-dir ./reports
  slicereport batch runs.txt --show-confusions --label-map "0:yes,1:no"`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./slicereport-out", "output directory for reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")

	// Inherit flags from analyze command
	batchCmd.Flags().StringVar(&labelMap, "label-map", model.DefaultConfig().Labels.Map, "label id to name mapping")
	batchCmd.Flags().BoolVar(&showExamples, "show-examples", false, "record example mistakes per slice")
	batchCmd.Flags().IntVar(&examplesPerSlice, "examples-per-slice", 3, "max example mistakes stored per slice")
	batchCmd.Flags().BoolVar(&showConfusions, "show-confusions", false, "include confusion pairs in reports")
	batchCmd.Flags().IntVar(&topConfusions, "top-confusions", 10, "max confusion pairs to show")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable token-set memoization")
}

func runBatch(cmd *cobra.Command, args []string) error {
	listFile := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	// Build configuration
	cfg := model.DefaultConfig()
	cfg.Labels.Map = labelMap
	cfg.Report.ShowExamples = showExamples
	cfg.Report.ExamplesPerSlice = examplesPerSlice
	cfg.Report.ShowConfusions = showConfusions
	cfg.Report.TopConfusions = topConfusions
	cfg.Cache.Enabled = !noCache
	cfg.Concurrency.Workers = concurrency
	cfg.Output.Verbose = verbose
	cfg.Output.OutputDir = outputDir

	labels, err := model.ParseLabelMap(cfg.Labels.Map)
	if err != nil {
		return fmt.Errorf("parse label map: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Input file:   %s\n", listFile)
	fmt.Fprintf(os.Stderr, "Workers:      %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir:   %s\n", outputDir)
	fmt.Fprintln(os.Stderr)

	// Create output directory
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// Create pipeline and batch processor
	p := pipeline.NewPipeline(cfg)
	processor := worker.NewBatchProcessor(p, concurrency)

	results, err := processor.ProcessFile(ctx, listFile)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	renderer := pipeline.NewRenderer(os.Stdout, labels, cfg.Report)

	successCount := 0
	failureCount := 0
	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Path, result.Error)
			continue
		}
		successCount++

		slug := sanitizeFilename(result.Path)
		jsonPath := filepath.Join(outputDir, slug+".json")
		mdPath := filepath.Join(outputDir, slug+".md")

		if err := renderer.RenderJSON(result.Report, jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write JSON: %v\n", result.Path, err)
			continue
		}
		if err := renderer.RenderMarkdown(result.Report, mdPath); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: failed to write Markdown: %v\n", result.Path, err)
			continue
		}

		fmt.Fprintf(os.Stderr, "✓ %s (scored %d, accuracy %.4f)\n", result.Path, result.Report.Scored, result.Report.Accuracy)
	}

	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Done: %d analyzed, %d failed\n", successCount, failureCount)

	if failureCount > 0 && successCount == 0 {
		return fmt.Errorf("all %d files failed", failureCount)
	}
	return nil
}

// sanitizeFilename turns a prediction-file path into a safe report base name.
func sanitizeFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "report"
	}
	return b.String()
}
