package pipeline

import (
	"context"
	"testing"

	"github.com/nlitools/slicereport/internal/model"
)

func TestPipeline_AnalyzeFile(t *testing.T) {
	path := writeTempFile(t, "preds.jsonl", `{"premise":"A man is not running","hypothesis":"A man is running","label":2,"predicted_label":0}
{"premise":"A dog runs in the park","hypothesis":"A dog runs","label":0,"predicted_label":0}
{"premise":"skipped","hypothesis":"skipped","label":1,"predicted_label":null}
`)

	cfg := model.DefaultConfig()
	cfg.Report.ShowExamples = true
	p := NewPipeline(cfg)

	report, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Scored != 2 {
		t.Errorf("expected 2 scored, got %d", report.Scored)
	}
	if report.Skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", report.Skipped)
	}
	if report.Accuracy != 0.5 {
		t.Errorf("expected accuracy 0.5, got %v", report.Accuracy)
	}
	if len(report.Dimensions) != 3 {
		t.Fatalf("expected 3 dimensions, got %d", len(report.Dimensions))
	}

	// The incorrect example lands in the negation slice with a stored mistake.
	neg := report.Dimension(model.DimNegation)
	found := false
	for _, s := range neg.Slices {
		if len(s.Mistakes) > 0 {
			found = true
		}
	}
	if !found {
		t.Error("expected at least one stored mistake in a negation slice")
	}
}

func TestPipeline_AnalyzeFile_CacheDisabled(t *testing.T) {
	path := writeTempFile(t, "preds.jsonl", `{"premise":"A man runs","hypothesis":"A man runs","label":0,"predicted_label":0}
`)

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	p := NewPipeline(cfg)

	report, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Scored != 1 || report.Accuracy != 1.0 {
		t.Errorf("unexpected report: scored=%d accuracy=%v", report.Scored, report.Accuracy)
	}
}

func TestPipeline_AnalyzeFile_Empty(t *testing.T) {
	path := writeTempFile(t, "empty.jsonl", "")

	p := NewPipeline(model.DefaultConfig())
	report, err := p.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("empty input must not fail: %v", err)
	}
	if report.Scored != 0 {
		t.Errorf("expected 0 scored, got %d", report.Scored)
	}
}
