package pipeline

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nlitools/slicereport/internal/model"
)

func testLabels(t *testing.T) model.LabelMap {
	t.Helper()
	labels, err := model.ParseLabelMap("0:entailment,1:neutral,2:contradiction")
	if err != nil {
		t.Fatalf("parse label map: %v", err)
	}
	return labels
}

func testReport() *model.Report {
	zero, two := 0, 2
	return &model.Report{
		SourceFile:  "preds.jsonl",
		GeneratedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Scored:      4,
		Correct:     3,
		Skipped:     1,
		Accuracy:    0.75,
		Dimensions: []model.DimensionStats{
			{
				Name:  model.DimNegation,
				Title: "Negation slices (premise or hypothesis)",
				Slices: []model.SliceStat{
					{Key: "NEG::no_negation", Total: 3, Correct: 3, Coverage: 0.75, Accuracy: 1.0},
					{
						Key: "NEG::negation", Total: 1, Correct: 0, Coverage: 0.25, Accuracy: 0.0,
						Mistakes: []model.Example{{
							Premise:        "A man is not running",
							Hypothesis:     "A man is running",
							Label:          &two,
							PredictedLabel: &zero,
						}},
					},
				},
			},
		},
		Confusions: []model.Confusion{
			{Gold: 0, Predicted: 0, Count: 3},
			{Gold: 2, Predicted: 0, Count: 1},
		},
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	opts := model.ReportConfig{ShowExamples: true, ShowConfusions: true, TopConfusions: 10}
	r := NewRenderer(&buf, testLabels(t), opts)

	r.RenderSummary(testReport())
	out := buf.String()

	for _, want := range []string{
		"File: preds.jsonl",
		"Scored: 4 examples (1 skipped)",
		"Overall accuracy: 0.7500",
		"NEG::no_negation",
		"NEG::negation",
		"Example errors for NEG::negation",
		"Gold: 2 (contradiction) | Pred: 0 (entailment)",
		"Top confusions",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n---\n%s", want, out)
		}
	}

	// Correct pairs are excluded from the confusion listing; only the
	// 0->0 pair has count 3.
	if strings.Contains(out, "count=3") {
		t.Error("correct pair should not be listed as a confusion")
	}
}

func TestRenderSummary_NoScoredExamples(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf, testLabels(t), model.ReportConfig{})

	r.RenderSummary(&model.Report{SourceFile: "empty.jsonl", Skipped: 2})
	out := buf.String()

	if !strings.Contains(out, "No scored examples") {
		t.Errorf("expected explicit no-scored-examples notice, got:\n%s", out)
	}
	if strings.Contains(out, "Overall accuracy") {
		t.Error("accuracy line must be suppressed when nothing was scored")
	}
}

func TestRenderJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	r := NewRenderer(&bytes.Buffer{}, testLabels(t), model.ReportConfig{})

	if err := r.RenderJSON(testReport(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var round model.Report
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatalf("report is not valid JSON: %v", err)
	}
	if round.Scored != 4 || round.Accuracy != 0.75 {
		t.Errorf("unexpected round-trip: scored=%d accuracy=%v", round.Scored, round.Accuracy)
	}
}

func TestRenderMarkdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	opts := model.ReportConfig{ShowConfusions: true, TopConfusions: 5}
	r := NewRenderer(&bytes.Buffer{}, testLabels(t), opts)

	if err := r.RenderMarkdown(testReport(), path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	out := string(data)
	for _, want := range []string{
		"# Slice report: preds.jsonl",
		"Overall accuracy: **0.7500**",
		"`NEG::negation`",
		"## Top confusions",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}
