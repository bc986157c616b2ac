package corpus

import (
	"context"

	"github.com/mikey/phishing-detector/internal/core"
)

// MemoryCorpus is an in-memory implementation of the CorpusRepository
// interface, used for tests and programmatic training runs.
type MemoryCorpus struct {
	examples []core.TrainingExample
}

// NewMemoryCorpus creates a corpus over a fixed set of examples.
func NewMemoryCorpus(examples []core.TrainingExample) *MemoryCorpus {
	return &MemoryCorpus{examples: examples}
}

// Load returns a copy of the examples.
func (r *MemoryCorpus) Load(ctx context.Context) ([]core.TrainingExample, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]core.TrainingExample, len(r.examples))
	copy(out, r.examples)
	return out, nil
}
