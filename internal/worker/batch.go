package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/nlitools/slicereport/internal/model"
)

// Analyzer defines the interface for analyzing one prediction file.
type Analyzer interface {
	AnalyzeFile(ctx context.Context, path string) (*model.Report, error)
}

// AnalyzeJob analyzes a single prediction file.
type AnalyzeJob struct {
	Path     string
	Analyzer Analyzer
}

// Execute runs the analysis job.
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	report, err := j.Analyzer.AnalyzeFile(ctx, j.Path)
	if err != nil {
		return &AnalyzeResult{Path: j.Path, Error: err}
	}
	return &AnalyzeResult{Path: j.Path, Report: report}
}

// AnalyzeResult is the outcome of analyzing one prediction file.
type AnalyzeResult struct {
	Path   string
	Report *model.Report
	Error  error
}

// Err returns the error from the analysis, if any.
func (r *AnalyzeResult) Err() error {
	return r.Error
}

// BatchProcessor analyzes multiple prediction files concurrently.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(analyzer Analyzer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
	}
}

// ProcessPaths analyzes the given prediction files concurrently and returns
// results in input order.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string) []*AnalyzeResult {
	jobs := make([]Job, len(paths))
	for i, path := range paths {
		jobs[i] = &AnalyzeJob{Path: path, Analyzer: b.analyzer}
	}

	pool := NewPool(b.concurrency)
	results := pool.Run(ctx, jobs)

	out := make([]*AnalyzeResult, len(results))
	for i, res := range results {
		out[i] = res.(*AnalyzeResult)
	}
	return out
}

// ProcessFile reads prediction-file paths from a list file and analyzes them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, listPath string) ([]*AnalyzeResult, error) {
	paths, err := ReadPathsFromFile(listPath)
	if err != nil {
		return nil, fmt.Errorf("read path list: %w", err)
	}
	return b.ProcessPaths(ctx, paths), nil
}

// ReadPathsFromFile reads file paths from a list file, one per line.
// Blank lines and # comments are skipped; duplicates are dropped.
func ReadPathsFromFile(listPath string) ([]string, error) {
	file, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
