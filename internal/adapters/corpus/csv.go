package corpus

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mikey/phishing-detector/internal/core"
)

// CSVCorpus reads the labeled corpus from a CSV file with an email_text
// column and a label column (0 = legitimate, 1 = phishing).
type CSVCorpus struct {
	path   string
	logger *zap.Logger
}

// NewCSVCorpus creates a CSV-backed corpus repository.
func NewCSVCorpus(path string, logger *zap.Logger) *CSVCorpus {
	return &CSVCorpus{path: path, logger: logger}
}

// Load reads and validates every row of the file.
func (r *CSVCorpus) Load(ctx context.Context) ([]core.TrainingExample, error) {
	file, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open corpus file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read corpus header: %w", err)
	}
	textIdx, err := findColumn(header, "email_text")
	if err != nil {
		return nil, err
	}
	labelIdx, err := findColumn(header, "label")
	if err != nil {
		return nil, err
	}

	var examples []core.TrainingExample
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read corpus row %d: %w", line, err)
		}
		line++
		if textIdx >= len(row) || labelIdx >= len(row) {
			return nil, fmt.Errorf("corpus row %d has %d columns", line, len(row))
		}
		label, err := strconv.Atoi(strings.TrimSpace(row[labelIdx]))
		if err != nil || (label != core.LabelLegitimate && label != core.LabelPhishing) {
			return nil, fmt.Errorf("corpus row %d: label %q is not 0 or 1", line, row[labelIdx])
		}
		examples = append(examples, core.TrainingExample{Text: row[textIdx], Label: label})
	}

	r.logger.Info("Loaded training corpus",
		zap.String("path", r.path),
		zap.Int("examples", len(examples)))
	return examples, nil
}

// findColumn locates a column name in the header row, case-insensitively.
func findColumn(header []string, name string) (int, error) {
	for i, col := range header {
		if strings.EqualFold(strings.TrimSpace(col), name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("column %q not found in corpus header", name)
}
