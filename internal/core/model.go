package core

import (
	"time"
)

// Labels used throughout the training corpus and classifier outputs.
const (
	LabelLegitimate = 0
	LabelPhishing   = 1
)

// Human-readable label strings reported to callers.
const (
	LabelNameLegitimate = "Legitimate"
	LabelNamePhishing   = "Phishing"
)

// TrainingExample is a single labeled row of the training corpus.
type TrainingExample struct {
	Text  string
	Label int
}

// ClassificationResult represents the outcome of classifying one email
type ClassificationResult struct {
	Label       string
	IsPhishing  bool
	PPhishing   float64
	PLegitimate float64
	AnalyzedAt  time.Time
	ModelKind   string
}

// FeatureSchema pins down the width and column names of the feature
// vectors a fitted model expects. It is persisted with the model bundle
// and checked on load so components fitted against different
// vocabularies can never be paired.
type FeatureSchema struct {
	Version int
	Names   []string
}

// Length returns the expected feature-vector width.
func (s FeatureSchema) Length() int {
	return len(s.Names)
}

// TrainingReport carries training-time diagnostics. None of its fields
// are a runtime contract.
type TrainingReport struct {
	Examples        int
	TrainSize       int
	HoldoutSize     int
	FeatureLength   int
	HoldoutAccuracy float64
	CVScores        []float64
	CVMean          float64
	CVStd           float64
	Elapsed         time.Duration
}
