package core

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DetectorService is the core service for phishing detection. It holds
// one loaded model and treats it as immutable, so a single service value
// may serve concurrent callers without synchronization.
type DetectorService struct {
	transformer FeatureTransformer
	scaler      VectorScaler
	classifier  Classifier
	logger      *zap.Logger
	threshold   float64
}

// NewDetectorService creates a new detector service around fitted model
// components. The threshold is the phishing probability at or above
// which an email is labeled phishing.
func NewDetectorService(
	transformer FeatureTransformer,
	scaler VectorScaler,
	classifier Classifier,
	logger *zap.Logger,
	threshold float64,
) *DetectorService {
	return &DetectorService{
		transformer: transformer,
		scaler:      scaler,
		classifier:  classifier,
		logger:      logger,
		threshold:   threshold,
	}
}

// Classify runs one email through the full pipeline: feature extraction,
// scaling, classification. Any string is valid input; empty or
// markup-only text degrades to an all-zero feature vector and still
// produces a result.
func (s *DetectorService) Classify(text string) (*ClassificationResult, error) {
	features, err := s.transformer.Transform(text)
	if err != nil {
		return nil, fmt.Errorf("extract features: %w", err)
	}

	scaled, err := s.scaler.Transform(features)
	if err != nil {
		return nil, fmt.Errorf("scale features: %w", err)
	}

	pLegit, pPhish, err := s.classifier.PredictProba(scaled)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	result := &ClassificationResult{
		IsPhishing:  pPhish >= s.threshold,
		PPhishing:   pPhish,
		PLegitimate: pLegit,
		AnalyzedAt:  time.Now(),
		ModelKind:   s.classifier.Kind(),
	}
	if result.IsPhishing {
		result.Label = LabelNamePhishing
	} else {
		result.Label = LabelNameLegitimate
	}

	s.logger.Debug("Classified email",
		zap.String("label", result.Label),
		zap.Float64("p_phishing", result.PPhishing),
		zap.Int("text_length", len(text)))

	return result, nil
}

// Threshold returns the configured phishing decision threshold.
func (s *DetectorService) Threshold() float64 {
	return s.threshold
}
