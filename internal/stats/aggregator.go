package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/nlitools/slicereport/internal/classify"
	"github.com/nlitools/slicereport/internal/model"
)

type labelPair struct {
	gold      int
	predicted int
}

// Aggregator accumulates per-slice accuracy counters over a single pass of
// examples. Examples missing a gold or predicted label are counted as
// skipped and excluded from every slice and from the confusion tally.
type Aggregator struct {
	classifier  *classify.Classifier
	maxMistakes int // incorrect examples kept per slice, 0 keeps none

	scored  int
	correct int
	skipped int

	totals     map[string]int
	corrects   map[string]int
	mistakes   map[string][]model.Example
	confusions map[labelPair]int
}

// NewAggregator creates an aggregator. maxMistakes caps how many incorrect
// examples are stored per slice for later display.
func NewAggregator(classifier *classify.Classifier, maxMistakes int) *Aggregator {
	return &Aggregator{
		classifier:  classifier,
		maxMistakes: maxMistakes,
		totals:      make(map[string]int),
		corrects:    make(map[string]int),
		mistakes:    make(map[string][]model.Example),
		confusions:  make(map[labelPair]int),
	}
}

// Add scores one example into every slice dimension.
func (a *Aggregator) Add(ex model.Example) {
	if !ex.Scored() {
		a.skipped++
		return
	}

	correct := ex.Correct()
	a.scored++
	if correct {
		a.correct++
	}
	a.confusions[labelPair{gold: *ex.Label, predicted: *ex.PredictedLabel}]++

	keys := [3]string{
		model.SliceKey(model.DimNegation, a.classifier.NegationBucket(ex.Premise, ex.Hypothesis)),
		model.SliceKey(model.DimLength, a.classifier.LengthBucket(ex.Hypothesis)),
		model.SliceKey(model.DimOverlap, a.classifier.OverlapBucket(ex.Premise, ex.Hypothesis)),
	}

	for _, key := range keys {
		a.totals[key]++
		if correct {
			a.corrects[key]++
		} else if len(a.mistakes[key]) < a.maxMistakes {
			a.mistakes[key] = append(a.mistakes[key], ex)
		}
	}
}

// Scored returns the number of examples scored so far.
func (a *Aggregator) Scored() int {
	return a.scored
}

// Report snapshots the counters into a model.Report. Buckets within each
// dimension are ordered by descending coverage, then by key.
func (a *Aggregator) Report(sourceFile string) *model.Report {
	report := &model.Report{
		SourceFile:  sourceFile,
		GeneratedAt: time.Now().UTC(),
		Scored:      a.scored,
		Correct:     a.correct,
		Skipped:     a.skipped,
	}
	if a.scored > 0 {
		report.Accuracy = float64(a.correct) / float64(a.scored)
	}

	report.Dimensions = []model.DimensionStats{
		a.dimension(model.DimNegation, "Negation slices (premise or hypothesis)"),
		a.dimension(model.DimLength, "Hypothesis length buckets"),
		a.dimension(model.DimOverlap, "Lexical overlap buckets (Jaccard)"),
	}

	for pair, count := range a.confusions {
		report.Confusions = append(report.Confusions, model.Confusion{
			Gold:      pair.gold,
			Predicted: pair.predicted,
			Count:     count,
		})
	}
	sort.Slice(report.Confusions, func(i, j int) bool {
		ci, cj := report.Confusions[i], report.Confusions[j]
		if ci.Count != cj.Count {
			return ci.Count > cj.Count
		}
		if ci.Gold != cj.Gold {
			return ci.Gold < cj.Gold
		}
		return ci.Predicted < cj.Predicted
	})

	return report
}

func (a *Aggregator) dimension(name, title string) model.DimensionStats {
	prefix := name + "::"
	dim := model.DimensionStats{Name: name, Title: title}

	for key, total := range a.totals {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		stat := model.SliceStat{
			Key:      key,
			Total:    total,
			Correct:  a.corrects[key],
			Accuracy: float64(a.corrects[key]) / float64(total),
			Mistakes: a.mistakes[key],
		}
		if a.scored > 0 {
			stat.Coverage = float64(total) / float64(a.scored)
		}
		dim.Slices = append(dim.Slices, stat)
	}

	sort.Slice(dim.Slices, func(i, j int) bool {
		if dim.Slices[i].Total != dim.Slices[j].Total {
			return dim.Slices[i].Total > dim.Slices[j].Total
		}
		return dim.Slices[i].Key < dim.Slices[j].Key
	})

	return dim
}
