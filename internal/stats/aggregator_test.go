package stats

import (
	"testing"

	"github.com/nlitools/slicereport/internal/classify"
	"github.com/nlitools/slicereport/internal/model"
)

func intp(v int) *int {
	return &v
}

func example(premise, hypothesis string, gold, pred int) model.Example {
	return model.Example{
		Premise:        premise,
		Hypothesis:     hypothesis,
		Label:          intp(gold),
		PredictedLabel: intp(pred),
	}
}

func newAggregator(maxMistakes int) *Aggregator {
	return NewAggregator(classify.NewClassifier(nil), maxMistakes)
}

func TestAggregator_NegationContradictionScenario(t *testing.T) {
	agg := newAggregator(3)
	agg.Add(example("A man is not running", "A man is running", 2, 0))

	report := agg.Report("test.jsonl")

	if report.Scored != 1 {
		t.Fatalf("expected 1 scored, got %d", report.Scored)
	}
	if report.Correct != 0 {
		t.Errorf("expected 0 correct, got %d", report.Correct)
	}

	// The premise carries the "not" cue, so the pair lands in the negation slice.
	neg := report.Dimension(model.DimNegation)
	if neg == nil || len(neg.Slices) != 1 {
		t.Fatalf("expected one negation slice, got %+v", neg)
	}
	if neg.Slices[0].Key != model.SliceKey(model.DimNegation, classify.BucketNegation) {
		t.Errorf("expected negation slice, got %q", neg.Slices[0].Key)
	}

	// Token sets differ only by "not": 4 shared of 5 -> 0.8 -> high overlap.
	ovl := report.Dimension(model.DimOverlap)
	if ovl == nil || len(ovl.Slices) != 1 {
		t.Fatalf("expected one overlap slice, got %+v", ovl)
	}
	if ovl.Slices[0].Key != model.SliceKey(model.DimOverlap, classify.BucketHighOverlap) {
		t.Errorf("expected high overlap slice, got %q", ovl.Slices[0].Key)
	}

	// Recorded as a contradiction -> entailment confusion.
	if len(report.Confusions) != 1 {
		t.Fatalf("expected 1 confusion pair, got %d", len(report.Confusions))
	}
	c := report.Confusions[0]
	if c.Gold != 2 || c.Predicted != 0 || c.Count != 1 {
		t.Errorf("expected 2->0 count=1, got %d->%d count=%d", c.Gold, c.Predicted, c.Count)
	}
}

func TestAggregator_HypothesisNegationSlice(t *testing.T) {
	agg := newAggregator(0)
	agg.Add(example("A man is running", "A man is not running", 2, 2))

	report := agg.Report("test.jsonl")
	neg := report.Dimension(model.DimNegation)
	if neg == nil || len(neg.Slices) != 1 {
		t.Fatalf("expected one negation slice, got %+v", neg)
	}
	want := model.SliceKey(model.DimNegation, classify.BucketNegation)
	if neg.Slices[0].Key != want {
		t.Errorf("expected %q, got %q", want, neg.Slices[0].Key)
	}
	if neg.Slices[0].Accuracy != 1.0 {
		t.Errorf("expected accuracy 1.0, got %v", neg.Slices[0].Accuracy)
	}
}

func TestAggregator_BucketTotalsSumToScored(t *testing.T) {
	agg := newAggregator(0)

	examples := []model.Example{
		example("A dog runs in the park", "A dog runs", 0, 0),
		example("A man is not running", "A man is running", 2, 0),
		example("Two kids play soccer on a field near the school", "Nobody is playing any games outside today at all", 2, 1),
		example("She reads", "She reads a very long book about the history of medieval European agriculture and trade routes", 1, 1),
	}
	for _, ex := range examples {
		agg.Add(ex)
	}

	report := agg.Report("test.jsonl")
	if report.Scored != len(examples) {
		t.Fatalf("expected %d scored, got %d", len(examples), report.Scored)
	}

	for _, dim := range report.Dimensions {
		sum := 0
		for _, s := range dim.Slices {
			sum += s.Total
		}
		if sum != report.Scored {
			t.Errorf("dimension %s: bucket totals sum to %d, want %d", dim.Name, sum, report.Scored)
		}
	}
}

func TestAggregator_SkipsUnscoredExamples(t *testing.T) {
	agg := newAggregator(0)

	agg.Add(model.Example{Premise: "p", Hypothesis: "h"})                 // both missing
	agg.Add(model.Example{Premise: "p", Hypothesis: "h", Label: intp(1)}) // predicted missing
	agg.Add(example("a man runs", "a man runs", 0, 0))

	report := agg.Report("test.jsonl")
	if report.Scored != 1 {
		t.Errorf("expected 1 scored, got %d", report.Scored)
	}
	if report.Skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", report.Skipped)
	}
	if len(report.Confusions) != 1 {
		t.Errorf("skipped examples must not reach the confusion tally, got %d pairs", len(report.Confusions))
	}
}

func TestAggregator_MistakeCap(t *testing.T) {
	agg := newAggregator(2)

	for i := 0; i < 5; i++ {
		agg.Add(example("a man runs", "a man runs", 0, 1))
	}

	report := agg.Report("test.jsonl")
	for _, dim := range report.Dimensions {
		for _, s := range dim.Slices {
			if len(s.Mistakes) > 2 {
				t.Errorf("slice %s stored %d mistakes, cap is 2", s.Key, len(s.Mistakes))
			}
		}
	}
}

func TestAggregator_ConfusionIncludesCorrectPairs(t *testing.T) {
	agg := newAggregator(0)

	agg.Add(example("a", "a", 0, 0))
	agg.Add(example("a", "a", 0, 0))
	agg.Add(example("a", "a", 0, 1))

	report := agg.Report("test.jsonl")
	if len(report.Confusions) != 2 {
		t.Fatalf("expected 2 confusion pairs, got %d", len(report.Confusions))
	}
	// Sorted by descending count: (0,0) x2 before (0,1) x1.
	if report.Confusions[0].Gold != 0 || report.Confusions[0].Predicted != 0 || report.Confusions[0].Count != 2 {
		t.Errorf("expected 0->0 count=2 first, got %+v", report.Confusions[0])
	}
}

func TestAggregator_SliceOrdering(t *testing.T) {
	agg := newAggregator(0)

	// Three short hypotheses, one medium: short bucket should come first.
	agg.Add(example("p", "a b c", 0, 0))
	agg.Add(example("p", "a b c", 0, 0))
	agg.Add(example("p", "a b c", 0, 0))
	agg.Add(example("p", "a b c d e f g", 0, 0))

	report := agg.Report("test.jsonl")
	lenDim := report.Dimension(model.DimLength)
	if lenDim == nil || len(lenDim.Slices) != 2 {
		t.Fatalf("expected 2 length slices, got %+v", lenDim)
	}
	if lenDim.Slices[0].Total < lenDim.Slices[1].Total {
		t.Errorf("slices not ordered by descending coverage: %+v", lenDim.Slices)
	}
}

func TestAggregator_EmptyReport(t *testing.T) {
	agg := newAggregator(0)
	report := agg.Report("empty.jsonl")

	if report.Scored != 0 {
		t.Errorf("expected 0 scored, got %d", report.Scored)
	}
	if report.Accuracy != 0 {
		t.Errorf("expected accuracy 0 on empty input, got %v", report.Accuracy)
	}
	if len(report.Dimensions) != 3 {
		t.Errorf("expected 3 dimensions even when empty, got %d", len(report.Dimensions))
	}
}
