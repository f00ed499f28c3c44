package pipeline

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/nlitools/slicereport/internal/model"
)

// maxLineBytes bounds a single prediction line. Premises in crowd-sourced
// NLI data stay well under this.
const maxLineBytes = 1024 * 1024

// ReadExamples reads a JSONL prediction file, one JSON object per line.
// Blank lines are skipped; a line that fails to parse is a fatal error
// reported with its line number.
func ReadExamples(ctx context.Context, path string) ([]model.Example, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open predictions: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var examples []model.Example
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ex model.Example
		if err := json.Unmarshal([]byte(line), &ex); err != nil {
			return nil, fmt.Errorf("parse line %d: %w", lineNo, err)
		}
		examples = append(examples, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read predictions: %w", err)
	}

	return examples, nil
}
