package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := "model:\n" +
		"  classifier: logistic_regression\n" +
		"features:\n" +
		"  max_features: 250\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := NewFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.GetViper().ConfigFileUsed())
	assert.Equal(t, "logistic_regression", cfg.GetModel().Classifier)
	assert.Equal(t, 250, cfg.GetFeatures().MaxFeatures)

	// Keys absent from the file keep their defaults.
	assert.Equal(t, 2, cfg.GetFeatures().NgramMax)
	assert.Equal(t, 0.2, cfg.GetTraining().TestFraction)
	assert.Equal(t, "csv", cfg.GetCorpus().Type)
}

func TestNewFromFileMissingFile(t *testing.T) {
	_, err := NewFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	assert.Equal(t, "random_forest", cfg.GetModel().Classifier)
	assert.Equal(t, 100, cfg.GetModel().ForestTrees)
	assert.Equal(t, 1000, cfg.GetFeatures().MaxFeatures)
	assert.Equal(t, 5, cfg.GetTraining().CVFolds)
	assert.Equal(t, int64(42), cfg.GetTraining().Seed)
	assert.Equal(t, 0.5, cfg.GetFloat64("detector.threshold"))
}
