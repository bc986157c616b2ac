package classifier

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/mikey/phishing-detector/internal/core"
)

// KindLogistic identifies the logistic-regression backend.
const KindLogistic = "logistic_regression"

// Default hyperparameters for the logistic backend.
const (
	DefaultLogisticEpochs       = 1000
	DefaultLogisticLearningRate = 0.1
	DefaultLogisticL2           = 1e-4
)

// LogisticRegression is a binary linear classifier trained with
// deterministic full-batch gradient descent. Weights start at zero, so
// two fits on the same data produce bit-identical models.
type LogisticRegression struct {
	epochs       int
	learningRate float64
	l2           float64

	weights []float64
	bias    float64
	fitted  bool
}

type logisticState struct {
	Epochs       int
	LearningRate float64
	L2           float64
	Weights      []float64
	Bias         float64
	Fitted       bool
}

// NewLogisticRegression creates an unfitted logistic-regression
// classifier. Non-positive arguments fall back to the defaults.
func NewLogisticRegression(epochs int, learningRate, l2 float64) *LogisticRegression {
	if epochs <= 0 {
		epochs = DefaultLogisticEpochs
	}
	if learningRate <= 0 {
		learningRate = DefaultLogisticLearningRate
	}
	if l2 < 0 {
		l2 = DefaultLogisticL2
	}
	return &LogisticRegression{
		epochs:       epochs,
		learningRate: learningRate,
		l2:           l2,
	}
}

// Kind identifies the backend.
func (c *LogisticRegression) Kind() string {
	return KindLogistic
}

// NumFeatures returns the fitted feature width, or 0 before Fit.
func (c *LogisticRegression) NumFeatures() int {
	return len(c.weights)
}

// Fit trains the model on scaled feature vectors with labels in {0, 1}.
func (c *LogisticRegression) Fit(x [][]float64, y []int) error {
	if len(x) == 0 {
		return fmt.Errorf("fit logistic regression: %w", core.ErrEmptyCorpus)
	}
	if len(x) != len(y) {
		return fmt.Errorf("fit logistic regression: %d rows but %d labels", len(x), len(y))
	}
	width := len(x[0])
	for _, row := range x {
		if len(row) != width {
			return &core.ShapeMismatchError{Component: "logistic regression fit", Want: width, Got: len(row)}
		}
	}
	for _, label := range y {
		if label != core.LabelLegitimate && label != core.LabelPhishing {
			return fmt.Errorf("fit logistic regression: label %d outside {0, 1}", label)
		}
	}

	c.weights = make([]float64, width)
	c.bias = 0
	grad := make([]float64, width)
	invN := 1 / float64(len(x))

	for epoch := 0; epoch < c.epochs; epoch++ {
		for j := range grad {
			grad[j] = 0
		}
		biasGrad := 0.0
		for i, row := range x {
			diff := c.proba(row) - float64(y[i])
			floats.AddScaled(grad, diff, row)
			biasGrad += diff
		}
		for j := range c.weights {
			c.weights[j] -= c.learningRate * (grad[j]*invN + c.l2*c.weights[j])
		}
		c.bias -= c.learningRate * biasGrad * invN
	}

	c.fitted = true
	return nil
}

// Predict returns the most probable label for x.
func (c *LogisticRegression) Predict(x []float64) (int, error) {
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
func (c *LogisticRegression) PredictProba(x []float64) (float64, float64, error) {
	if !c.fitted {
		return 0, 0, fmt.Errorf("logistic regression: %w", core.ErrNotFitted)
	}
	if len(x) != len(c.weights) {
		return 0, 0, &core.ShapeMismatchError{Component: "logistic regression", Want: len(c.weights), Got: len(x)}
	}
	pPhish := c.proba(x)
	return 1 - pPhish, pPhish, nil
}

func (c *LogisticRegression) proba(x []float64) float64 {
	return sigmoid(floats.Dot(c.weights, x) + c.bias)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

// MarshalBinary snapshots the fitted model for the bundle.
func (c *LogisticRegression) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	state := logisticState{
		Epochs:       c.epochs,
		LearningRate: c.learningRate,
		L2:           c.l2,
		Weights:      c.weights,
		Bias:         c.bias,
		Fitted:       c.fitted,
	}
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, fmt.Errorf("encode logistic regression: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary restores a fitted model from a bundle snapshot.
func (c *LogisticRegression) UnmarshalBinary(data []byte) error {
	var state logisticState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&state); err != nil {
		return fmt.Errorf("decode logistic regression: %w", err)
	}
	c.epochs = state.Epochs
	c.learningRate = state.LearningRate
	c.l2 = state.L2
	c.weights = state.Weights
	c.bias = state.Bias
	c.fitted = state.Fitted
	return nil
}
