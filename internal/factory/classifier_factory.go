package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/phishing-detector/internal/adapters/classifier"
	"github.com/mikey/phishing-detector/internal/config"
	"github.com/mikey/phishing-detector/internal/core"
)

// ClassifierFactory creates classifier backends
type ClassifierFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewClassifierFactory creates a new classifier factory
func NewClassifierFactory(cfg *config.Config, logger *zap.Logger) *ClassifierFactory {
	return &ClassifierFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateClassifier creates an unfitted classifier based on the configuration
func (f *ClassifierFactory) CreateClassifier() (core.Classifier, error) {
	model := f.cfg.GetModel()

	switch model.Classifier {
	case classifier.KindForest:
		f.logger.Debug("Using random forest classifier", zap.Int("trees", model.ForestTrees))
		return classifier.NewRandomForest(model.ForestTrees), nil
	case classifier.KindLogistic:
		f.logger.Debug("Using logistic regression classifier",
			zap.Int("epochs", model.LogisticEpochs),
			zap.Float64("learning_rate", model.LogisticLearningRate))
		return classifier.NewLogisticRegression(
			model.LogisticEpochs,
			model.LogisticLearningRate,
			model.LogisticL2,
		), nil
	default:
		return nil, fmt.Errorf("unsupported classifier: %s", model.Classifier)
	}
}

// CreateByKind reconstructs an empty classifier backend of the given
// kind; fitted state and hyperparameters come from the bundle snapshot.
func (f *ClassifierFactory) CreateByKind(kind string) (core.Classifier, error) {
	switch kind {
	case classifier.KindForest:
		return &classifier.RandomForest{}, nil
	case classifier.KindLogistic:
		return &classifier.LogisticRegression{}, nil
	default:
		return nil, fmt.Errorf("unsupported classifier: %s", kind)
	}
}
