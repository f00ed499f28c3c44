package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Example is a single NLI prediction record, one JSON object per input line.
// Label and PredictedLabel are pointers so that absent or null fields can be
// told apart from a legitimate label 0.
type Example struct {
	Premise        string `json:"premise"`
	Hypothesis     string `json:"hypothesis"`
	Label          *int   `json:"label"`
	PredictedLabel *int   `json:"predicted_label"`
}

// Scored reports whether the example carries both a gold and a predicted label.
func (e Example) Scored() bool {
	return e.Label != nil && e.PredictedLabel != nil
}

// Correct reports whether the predicted label matches the gold label.
// Only meaningful for scored examples.
func (e Example) Correct() bool {
	return e.Scored() && *e.Label == *e.PredictedLabel
}

// LabelMap maps numeric label ids to human-readable names.
type LabelMap map[int]string

// ParseLabelMap parses a mapping string like
// "0:entailment,1:neutral,2:contradiction".
func ParseLabelMap(s string) (LabelMap, error) {
	out := LabelMap{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("label map entry %q: want id:name", part)
		}
		id, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			return nil, fmt.Errorf("label map entry %q: %w", part, err)
		}
		out[id] = strings.TrimSpace(v)
	}
	return out, nil
}

// Format renders a label id with its name when known, e.g. "2 (contradiction)".
func (m LabelMap) Format(id int) string {
	if name, ok := m[id]; ok {
		return fmt.Sprintf("%d (%s)", id, name)
	}
	return strconv.Itoa(id)
}
