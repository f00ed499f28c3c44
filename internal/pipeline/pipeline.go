package pipeline

import (
	"context"
	"fmt"

	"github.com/nlitools/slicereport/internal/cache"
	"github.com/nlitools/slicereport/internal/classify"
	"github.com/nlitools/slicereport/internal/model"
	"github.com/nlitools/slicereport/internal/stats"
)

// Pipeline runs the complete analysis: read predictions, classify each
// example into slices, aggregate, and snapshot a report.
type Pipeline struct {
	classifier *classify.Classifier
	config     *model.Config
}

// NewPipeline creates a pipeline with the given configuration.
func NewPipeline(cfg *model.Config) *Pipeline {
	var tokens cache.TokenCache
	if cfg.Cache.Enabled {
		tokens = cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL)
	}
	return &Pipeline{
		classifier: classify.NewClassifier(tokens),
		config:     cfg,
	}
}

// AnalyzeFile analyzes one prediction file and returns its report.
func (p *Pipeline) AnalyzeFile(ctx context.Context, path string) (*model.Report, error) {
	examples, err := ReadExamples(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	maxMistakes := 0
	if p.config.Report.ShowExamples {
		maxMistakes = p.config.Report.ExamplesPerSlice
	}

	agg := stats.NewAggregator(p.classifier, maxMistakes)
	for _, ex := range examples {
		agg.Add(ex)
	}

	return agg.Report(path), nil
}
