package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nlitools/slicereport/internal/model"
)

// Renderer formats reports as terminal text, JSON, and Markdown.
type Renderer struct {
	out     io.Writer
	labels  model.LabelMap
	options model.ReportConfig
}

// NewRenderer creates a renderer writing its text summary to out.
func NewRenderer(out io.Writer, labels model.LabelMap, options model.ReportConfig) *Renderer {
	return &Renderer{out: out, labels: labels, options: options}
}

// RenderSummary prints the human-readable report.
func (r *Renderer) RenderSummary(report *model.Report) {
	fmt.Fprintf(r.out, "\nFile: %s\n", report.SourceFile)

	if report.Scored == 0 {
		fmt.Fprintf(r.out, "No scored examples (%d lines skipped for missing labels)\n", report.Skipped)
		return
	}

	if report.Skipped > 0 {
		fmt.Fprintf(r.out, "Scored: %d examples (%d skipped)\n", report.Scored, report.Skipped)
	} else {
		fmt.Fprintf(r.out, "Scored: %d examples\n", report.Scored)
	}
	fmt.Fprintf(r.out, "Overall accuracy: %.4f\n\n", report.Accuracy)

	for _, dim := range report.Dimensions {
		r.renderDimension(dim)
	}

	if r.options.ShowConfusions {
		r.renderConfusions(report)
	}
}

func (r *Renderer) renderDimension(dim model.DimensionStats) {
	fmt.Fprintln(r.out, dim.Title)
	fmt.Fprintln(r.out, strings.Repeat("-", len(dim.Title)))
	for _, s := range dim.Slices {
		fmt.Fprintf(r.out, "%-22s n=%6d (%5.1f%%) acc=%.4f\n", s.Key, s.Total, 100*s.Coverage, s.Accuracy)
	}
	fmt.Fprintln(r.out)

	if !r.options.ShowExamples {
		return
	}

	// Show stored mistakes from the weakest bucket of this dimension.
	worst := lowestAccuracySlice(dim.Slices)
	if worst == nil || len(worst.Mistakes) == 0 {
		return
	}
	fmt.Fprintf(r.out, "Example errors for %s (acc=%.4f):\n", worst.Key, worst.Accuracy)
	for _, ex := range worst.Mistakes {
		fmt.Fprintf(r.out, "- Premise: %s\n", ex.Premise)
		fmt.Fprintf(r.out, "  Hypothesis: %s\n", ex.Hypothesis)
		fmt.Fprintf(r.out, "  Gold: %s | Pred: %s\n\n", r.labels.Format(*ex.Label), r.labels.Format(*ex.PredictedLabel))
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) renderConfusions(report *model.Report) {
	title := "Top confusions (gold -> pred), excluding correct"
	fmt.Fprintln(r.out, title)
	fmt.Fprintln(r.out, strings.Repeat("-", len(title)))

	shown := 0
	for _, c := range report.Confusions {
		if c.Gold == c.Predicted {
			continue
		}
		if shown >= r.options.TopConfusions {
			break
		}
		fmt.Fprintf(r.out, "%18s -> %-18s  count=%d\n", r.labels.Format(c.Gold), r.labels.Format(c.Predicted), c.Count)
		shown++
	}
	if shown == 0 {
		fmt.Fprintln(r.out, "(none)")
	}
	fmt.Fprintln(r.out)
}

// lowestAccuracySlice picks the bucket with the worst accuracy, or nil when
// the dimension is empty.
func lowestAccuracySlice(slices []model.SliceStat) *model.SliceStat {
	var worst *model.SliceStat
	for i := range slices {
		if worst == nil || slices[i].Accuracy < worst.Accuracy {
			worst = &slices[i]
		}
	}
	return worst
}

// RenderJSON writes the report as indented JSON.
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document.
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Slice report: %s\n\n", report.SourceFile)
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	if report.Scored == 0 {
		fmt.Fprintf(&b, "**No scored examples** (%d lines skipped for missing labels).\n", report.Skipped)
		return writeMarkdown(path, b.String())
	}

	fmt.Fprintf(&b, "- Scored: %d\n", report.Scored)
	fmt.Fprintf(&b, "- Skipped: %d\n", report.Skipped)
	fmt.Fprintf(&b, "- Overall accuracy: **%.4f**\n\n", report.Accuracy)

	for _, dim := range report.Dimensions {
		fmt.Fprintf(&b, "## %s\n\n", dim.Title)
		fmt.Fprintf(&b, "| Slice | n | Coverage | Accuracy |\n")
		fmt.Fprintf(&b, "|-------|---|----------|----------|\n")
		for _, s := range dim.Slices {
			fmt.Fprintf(&b, "| `%s` | %d | %.1f%% | %.4f |\n", s.Key, s.Total, 100*s.Coverage, s.Accuracy)
		}
		fmt.Fprintln(&b)
	}

	if r.options.ShowConfusions {
		fmt.Fprintf(&b, "## Top confusions (gold -> pred)\n\n")
		fmt.Fprintf(&b, "| Gold | Predicted | Count |\n")
		fmt.Fprintf(&b, "|------|-----------|-------|\n")
		shown := 0
		for _, c := range report.Confusions {
			if c.Gold == c.Predicted {
				continue
			}
			if shown >= r.options.TopConfusions {
				break
			}
			fmt.Fprintf(&b, "| %s | %s | %d |\n", r.labels.Format(c.Gold), r.labels.Format(c.Predicted), c.Count)
			shown++
		}
		fmt.Fprintln(&b)
	}

	return writeMarkdown(path, b.String())
}

func writeMarkdown(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}
