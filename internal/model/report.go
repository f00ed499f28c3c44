package model

import "time"

// Dimension names used as slice-key prefixes.
const (
	DimNegation = "NEG"
	DimLength   = "LEN"
	DimOverlap  = "OVL"
)

// SliceKey builds the full key for a bucket within a dimension,
// e.g. SliceKey(DimNegation, "negation") -> "NEG::negation".
func SliceKey(dimension, bucket string) string {
	return dimension + "::" + bucket
}

// Report is the complete slice-accuracy breakdown for one prediction file.
type Report struct {
	SourceFile  string    `json:"source_file"`
	GeneratedAt time.Time `json:"generated_at"`

	Scored   int     `json:"scored"`   // examples with both gold and predicted label
	Correct  int     `json:"correct"`  // scored examples where gold == predicted
	Skipped  int     `json:"skipped"`  // examples missing a label, excluded from scoring
	Accuracy float64 `json:"accuracy"` // correct / scored, 0 when nothing scored

	Dimensions []DimensionStats `json:"dimensions"`
	Confusions []Confusion      `json:"confusions,omitempty"`
}

// DimensionStats groups the buckets of one slicing dimension.
type DimensionStats struct {
	Name   string      `json:"name"`  // NEG, LEN, OVL
	Title  string      `json:"title"` // human heading for the text report
	Slices []SliceStat `json:"slices"`
}

// SliceStat holds the aggregate counters for one bucket.
type SliceStat struct {
	Key      string  `json:"key"`      // full key, e.g. "LEN::short(<=5)"
	Total    int     `json:"total"`    // scored examples in this bucket
	Correct  int     `json:"correct"`  // of those, correctly predicted
	Coverage float64 `json:"coverage"` // Total / Report.Scored
	Accuracy float64 `json:"accuracy"` // Correct / Total

	// Mistakes holds up to a configured number of incorrect examples
	// recorded for this bucket, in input order.
	Mistakes []Example `json:"mistakes,omitempty"`
}

// Confusion counts one (gold, predicted) label pair across all scored
// examples, including correct pairs where gold == predicted.
type Confusion struct {
	Gold      int `json:"gold"`
	Predicted int `json:"predicted"`
	Count     int `json:"count"`
}

// Dimension returns the stats for the named dimension, or nil.
func (r *Report) Dimension(name string) *DimensionStats {
	for i := range r.Dimensions {
		if r.Dimensions[i].Name == name {
			return &r.Dimensions[i]
		}
	}
	return nil
}
