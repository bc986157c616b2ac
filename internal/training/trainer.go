// Package training turns a labeled corpus into a saved model bundle:
// fit the feature pipeline, scale, train the classifier and report
// holdout and cross-validated accuracy.
package training

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/mikey/phishing-detector/internal/bundle"
	"github.com/mikey/phishing-detector/internal/core"
	"github.com/mikey/phishing-detector/internal/features"
)

// Options control a training run.
type Options struct {
	// TestFraction of each class held out for the accuracy estimate.
	TestFraction float64
	// CVFolds for the cross-validation diagnostic. CV is skipped with a
	// warning when a class has fewer members than folds.
	CVFolds int
	// Seed for the stratified shuffles, so runs are reproducible.
	Seed int64
}

// DefaultOptions mirror the parameters the detector was tuned with.
func DefaultOptions() Options {
	return Options{TestFraction: 0.2, CVFolds: 5, Seed: 42}
}

// Trainer runs the one-shot training batch job. The pipeline and
// classifier constructors produce fresh unfitted instances, which
// cross-validation needs one of per fold.
type Trainer struct {
	newPipeline   func() *features.Pipeline
	newClassifier func() core.Classifier
	opts          Options
	logger        *zap.Logger
}

// NewTrainer creates a trainer.
func NewTrainer(
	newPipeline func() *features.Pipeline,
	newClassifier func() core.Classifier,
	opts Options,
	logger *zap.Logger,
) *Trainer {
	if opts.TestFraction <= 0 || opts.TestFraction >= 1 {
		opts.TestFraction = 0.2
	}
	if opts.CVFolds < 2 {
		opts.CVFolds = 5
	}
	return &Trainer{
		newPipeline:   newPipeline,
		newClassifier: newClassifier,
		opts:          opts,
		logger:        logger,
	}
}

// Train fits the full pipeline on the corpus and assembles the model
// bundle. The corpus must contain both classes.
func (t *Trainer) Train(ctx context.Context, examples []core.TrainingExample) (*bundle.Bundle, *core.TrainingReport, error) {
	started := time.Now()

	if len(examples) == 0 {
		return nil, nil, core.ErrEmptyCorpus
	}
	texts := make([]string, len(examples))
	labels := make([]int, len(examples))
	classCounts := make(map[int]int)
	for i, example := range examples {
		if example.Label != core.LabelLegitimate && example.Label != core.LabelPhishing {
			return nil, nil, fmt.Errorf("example %d: label %d outside {0, 1}", i, example.Label)
		}
		texts[i] = example.Text
		labels[i] = example.Label
		classCounts[example.Label]++
	}
	if len(classCounts) < 2 {
		return nil, nil, core.ErrSingleClass
	}

	t.logger.Info("Extracting features",
		zap.Int("examples", len(examples)),
		zap.Int("phishing", classCounts[core.LabelPhishing]),
		zap.Int("legitimate", classCounts[core.LabelLegitimate]))

	pipeline := t.newPipeline()
	if err := pipeline.Fit(texts); err != nil {
		return nil, nil, fmt.Errorf("fit feature pipeline: %w", err)
	}
	matrix := make([][]float64, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		vec, err := pipeline.Transform(text)
		if err != nil {
			return nil, nil, fmt.Errorf("transform example %d: %w", i, err)
		}
		matrix[i] = vec
	}
	t.logger.Info("Feature matrix built",
		zap.Int("rows", len(matrix)),
		zap.Int("columns", pipeline.NumFeatures()))

	rng := rand.New(rand.NewSource(t.opts.Seed))
	trainIdx, testIdx := stratifiedSplit(labels, t.opts.TestFraction, rng)

	scaler := features.NewStandardScaler()
	if err := scaler.Fit(rows(matrix, trainIdx)); err != nil {
		return nil, nil, fmt.Errorf("fit scaler: %w", err)
	}
	trainScaled, err := scaler.TransformAll(rows(matrix, trainIdx))
	if err != nil {
		return nil, nil, err
	}

	clf := t.newClassifier()
	if err := clf.Fit(trainScaled, picks(labels, trainIdx)); err != nil {
		return nil, nil, fmt.Errorf("fit classifier: %w", err)
	}

	report := &core.TrainingReport{
		Examples:      len(examples),
		TrainSize:     len(trainIdx),
		HoldoutSize:   len(testIdx),
		FeatureLength: pipeline.NumFeatures(),
	}

	if len(testIdx) > 0 {
		testScaled, err := scaler.TransformAll(rows(matrix, testIdx))
		if err != nil {
			return nil, nil, err
		}
		acc, err := accuracy(clf, testScaled, picks(labels, testIdx))
		if err != nil {
			return nil, nil, err
		}
		report.HoldoutAccuracy = acc
		t.logger.Info("Holdout accuracy",
			zap.Float64("accuracy", acc),
			zap.Int("holdout_size", len(testIdx)))
	}

	if err := t.crossValidate(ctx, matrix, labels, classCounts, rng, report); err != nil {
		return nil, nil, err
	}

	report.Elapsed = time.Since(started)

	b := &bundle.Bundle{
		CreatedAt:  time.Now(),
		Schema:     pipeline.Schema(),
		Pipeline:   pipeline,
		Scaler:     scaler,
		Classifier: clf,
	}
	t.logger.Info("Training complete",
		zap.String("classifier", clf.Kind()),
		zap.Duration("elapsed", report.Elapsed))
	return b, report, nil
}

// crossValidate fills in the k-fold diagnostic. Each fold refits a fresh
// scaler and classifier on the remaining folds, so no fold ever scores
// data it was fitted on.
func (t *Trainer) crossValidate(
	ctx context.Context,
	matrix [][]float64,
	labels []int,
	classCounts map[int]int,
	rng *rand.Rand,
	report *core.TrainingReport,
) error {
	for class, count := range classCounts {
		if count < t.opts.CVFolds {
			t.logger.Warn("Skipping cross-validation",
				zap.Int("class", class),
				zap.Int("members", count),
				zap.Int("folds", t.opts.CVFolds))
			return nil
		}
	}

	folds := stratifiedFolds(labels, t.opts.CVFolds, rng)
	scores := make([]float64, 0, len(folds))
	for f, holdout := range folds {
		if err := ctx.Err(); err != nil {
			return err
		}
		var trainIdx []int
		for g, fold := range folds {
			if g != f {
				trainIdx = append(trainIdx, fold...)
			}
		}

		scaler := features.NewStandardScaler()
		if err := scaler.Fit(rows(matrix, trainIdx)); err != nil {
			return fmt.Errorf("cv fold %d: %w", f, err)
		}
		trainScaled, err := scaler.TransformAll(rows(matrix, trainIdx))
		if err != nil {
			return fmt.Errorf("cv fold %d: %w", f, err)
		}
		clf := t.newClassifier()
		if err := clf.Fit(trainScaled, picks(labels, trainIdx)); err != nil {
			return fmt.Errorf("cv fold %d: %w", f, err)
		}
		holdScaled, err := scaler.TransformAll(rows(matrix, holdout))
		if err != nil {
			return fmt.Errorf("cv fold %d: %w", f, err)
		}
		score, err := accuracy(clf, holdScaled, picks(labels, holdout))
		if err != nil {
			return fmt.Errorf("cv fold %d: %w", f, err)
		}
		scores = append(scores, score)
	}

	report.CVScores = scores
	mean, stddev := stat.MeanStdDev(scores, nil)
	if math.IsNaN(stddev) {
		stddev = 0
	}
	report.CVMean = mean
	report.CVStd = stddev
	t.logger.Info("Cross-validation accuracy",
		zap.Float64("mean", mean),
		zap.Float64("stddev", stddev),
		zap.Float64s("scores", scores))
	return nil
}

func accuracy(clf core.Classifier, x [][]float64, y []int) (float64, error) {
	if len(x) == 0 {
		return 0, nil
	}
	correct := 0
	for i, row := range x {
		pred, err := clf.Predict(row)
		if err != nil {
			return 0, err
		}
		if pred == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(x)), nil
}

func rows(matrix [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, j := range idx {
		out[i] = matrix[j]
	}
	return out
}

func picks(values []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = values[j]
	}
	return out
}
