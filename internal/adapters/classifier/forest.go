package classifier

import (
	"bytes"
	"encoding/gob"
	"fmt"

	randomforest "github.com/malaschitz/randomForest"

	"github.com/mikey/phishing-detector/internal/core"
)

// KindForest identifies the random-forest backend.
const KindForest = "random_forest"

// DefaultForestTrees matches the tree count the detector was tuned with.
const DefaultForestTrees = 100

// RandomForest wraps an ensemble-of-trees classifier behind the
// Classifier port. Probabilities are the normalized class votes of the
// fitted forest.
type RandomForest struct {
	trees       int
	numFeatures int
	forest      *randomforest.Forest
	fitted      bool
}

type forestState struct {
	Trees       int
	NumFeatures int
	Forest      *randomforest.Forest
	Fitted      bool
}

// NewRandomForest creates an unfitted random forest with the given tree
// count (non-positive means DefaultForestTrees).
func NewRandomForest(trees int) *RandomForest {
	if trees <= 0 {
		trees = DefaultForestTrees
	}
	return &RandomForest{trees: trees}
}

// Kind identifies the backend.
func (c *RandomForest) Kind() string {
	return KindForest
}

// NumFeatures returns the fitted feature width, or 0 before Fit.
func (c *RandomForest) NumFeatures() int {
	return c.numFeatures
}

// Fit trains the forest on scaled feature vectors with labels in {0, 1}.
func (c *RandomForest) Fit(x [][]float64, y []int) error {
	if len(x) == 0 {
		return fmt.Errorf("fit random forest: %w", core.ErrEmptyCorpus)
	}
	if len(x) != len(y) {
		return fmt.Errorf("fit random forest: %d rows but %d labels", len(x), len(y))
	}
	width := len(x[0])
	for _, row := range x {
		if len(row) != width {
			return &core.ShapeMismatchError{Component: "random forest fit", Want: width, Got: len(row)}
		}
	}
	for _, label := range y {
		if label != core.LabelLegitimate && label != core.LabelPhishing {
			return fmt.Errorf("fit random forest: label %d outside {0, 1}", label)
		}
	}

	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: x, Class: y}
	forest.Train(c.trees)

	c.forest = forest
	c.numFeatures = width
	c.fitted = true
	return nil
}

// Predict returns the most probable label for x.
func (c *RandomForest) Predict(x []float64) (int, error) {
	_, pPhish, err := c.PredictProba(x)
	if err != nil {
		return 0, err
	}
	if pPhish >= 0.5 {
		return core.LabelPhishing, nil
	}
	return core.LabelLegitimate, nil
}

// PredictProba returns (pLegitimate, pPhishing); the two sum to 1.
func (c *RandomForest) PredictProba(x []float64) (float64, float64, error) {
	if !c.fitted {
		return 0, 0, fmt.Errorf("random forest: %w", core.ErrNotFitted)
	}
	if len(x) != c.numFeatures {
		return 0, 0, &core.ShapeMismatchError{Component: "random forest", Want: c.numFeatures, Got: len(x)}
	}

	votes := c.forest.Vote(x)
	var pLegit, pPhish float64
	if len(votes) > core.LabelLegitimate {
		pLegit = votes[core.LabelLegitimate]
	}
	if len(votes) > core.LabelPhishing {
		pPhish = votes[core.LabelPhishing]
	}
	if total := pLegit + pPhish; total > 0 {
		pLegit /= total
		pPhish /= total
	} else {
		pLegit, pPhish = 0.5, 0.5
	}
	return pLegit, pPhish, nil
}

// MarshalBinary snapshots the fitted forest for the bundle.
func (c *RandomForest) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	state := forestState{
		Trees:       c.trees,
		NumFeatures: c.numFeatures,
		Forest:      c.forest,
		Fitted:      c.fitted,
	}
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, fmt.Errorf("encode random forest: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary restores a fitted forest from a bundle snapshot.
func (c *RandomForest) UnmarshalBinary(data []byte) error {
	var state forestState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return fmt.Errorf("decode random forest: %w", err)
	}
	c.trees = state.Trees
	c.numFeatures = state.NumFeatures
	c.forest = state.Forest
	c.fitted = state.Fitted
	return nil
}

var _ core.Classifier = (*RandomForest)(nil)
var _ core.Classifier = (*LogisticRegression)(nil)
