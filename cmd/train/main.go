package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mikey/phishing-detector/internal/config"
	"github.com/mikey/phishing-detector/internal/core"
	"github.com/mikey/phishing-detector/internal/di"
	"github.com/mikey/phishing-detector/internal/training"
)

func main() {
	flags := di.ParseTrainFlags()

	container, err := di.BuildTrainContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	if err := container.Invoke(run); err != nil {
		fmt.Printf("Training error: %v\n", err)
		os.Exit(1)
	}
}

// run is the training job function that gets all dependencies injected
func run(
	logger *zap.Logger,
	cfg *config.Config,
	repo core.CorpusRepository,
	trainer *training.Trainer,
) error {
	defer logger.Sync()

	ctx := context.Background()

	examples, err := repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	b, report, err := trainer.Train(ctx, examples)
	if err != nil {
		return err
	}

	modelPath := cfg.GetModel().Path
	if dir := filepath.Dir(modelPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create model directory: %w", err)
		}
	}
	if err := b.Save(modelPath); err != nil {
		return err
	}
	logger.Info("Saved model bundle", zap.String("path", modelPath))

	fmt.Printf("\n=== Training Results ===\n")
	fmt.Printf("Examples: %d (train %d, holdout %d)\n", report.Examples, report.TrainSize, report.HoldoutSize)
	fmt.Printf("Feature length: %d\n", report.FeatureLength)
	fmt.Printf("Classifier: %s\n", b.Classifier.Kind())
	fmt.Printf("Holdout accuracy: %.4f\n", report.HoldoutAccuracy)
	if len(report.CVScores) > 0 {
		fmt.Printf("Cross-validation: %.4f (+/- %.4f) over %d folds\n", report.CVMean, report.CVStd*2, len(report.CVScores))
	}
	fmt.Printf("Elapsed: %v\n", report.Elapsed)
	fmt.Printf("Model saved to: %s\n", modelPath)

	if closer, ok := repo.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close corpus repository", zap.Error(err))
		}
	}
	return nil
}
