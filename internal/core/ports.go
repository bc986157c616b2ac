package core

import (
	"context"
	"encoding"
)

// Classifier defines the interface for binary classifier backends.
// A classifier is fitted once on scaled feature vectors and is immutable
// afterwards; fitted state round-trips through the binary marshaler so
// the model bundle can persist any backend.
type Classifier interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler

	// Kind identifies the backend, e.g. "random_forest".
	Kind() string

	// NumFeatures is the feature-vector width the fitted classifier
	// expects, or 0 before fitting.
	NumFeatures() int

	// Fit trains on scaled feature vectors with labels in {0, 1}.
	Fit(x [][]float64, y []int) error

	// Predict returns LabelLegitimate or LabelPhishing.
	Predict(x []float64) (int, error)

	// PredictProba returns the class probabilities. The two values sum to 1.
	PredictProba(x []float64) (pLegitimate, pPhishing float64, err error)
}

// FeatureTransformer turns raw email text into a fixed-width feature vector.
type FeatureTransformer interface {
	Transform(text string) ([]float64, error)
	Schema() FeatureSchema
}

// VectorScaler standardizes a feature vector using fitted statistics.
type VectorScaler interface {
	Transform(x []float64) ([]float64, error)
}

// CorpusRepository defines the interface for loading the labeled
// training corpus.
type CorpusRepository interface {
	// Load returns every labeled example in the corpus.
	Load(ctx context.Context) ([]TrainingExample, error)
}
