package bundle

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/phishing-detector/internal/adapters/classifier"
	"github.com/mikey/phishing-detector/internal/core"
	"github.com/mikey/phishing-detector/internal/features"
)

var bundleCorpus = []string{
	"URGENT: Verify your account immediately or it will be suspended!",
	"Click here now to claim your free prize money!",
	"Thank you for your recent purchase. Your order has shipped.",
	"The meeting has been moved to Thursday afternoon.",
}

func testFactory(string) (core.Classifier, error) {
	return &classifier.LogisticRegression{}, nil
}

func fittedBundleWith(t *testing.T, clf core.Classifier) *Bundle {
	t.Helper()

	pipeline := features.NewPipeline(50, 2)
	require.NoError(t, pipeline.Fit(bundleCorpus))

	matrix := make([][]float64, len(bundleCorpus))
	for i, text := range bundleCorpus {
		vec, err := pipeline.Transform(text)
		require.NoError(t, err)
		matrix[i] = vec
	}

	scaler := features.NewStandardScaler()
	require.NoError(t, scaler.Fit(matrix))
	scaled, err := scaler.TransformAll(matrix)
	require.NoError(t, err)

	require.NoError(t, clf.Fit(scaled, []int{1, 1, 0, 0}))

	return &Bundle{
		CreatedAt:  time.Now(),
		Schema:     pipeline.Schema(),
		Pipeline:   pipeline,
		Scaler:     scaler,
		Classifier: clf,
	}
}

func fittedBundle(t *testing.T) *Bundle {
	t.Helper()
	return fittedBundleWith(t, classifier.NewLogisticRegression(0, 0, 0))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	b := fittedBundle(t)
	path := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, b.Save(path))

	loaded, err := Load(path, testFactory)
	require.NoError(t, err)
	assert.Equal(t, b.Schema, loaded.Schema)
	assert.Equal(t, b.Pipeline.NumFeatures(), loaded.Pipeline.NumFeatures())

	// The restored components must classify exactly like the originals.
	probes := []string{
		"URGENT: verify your account now",
		"Thanks again for the order",
		"",
	}
	for _, probe := range probes {
		wantVec, err := b.Pipeline.Transform(probe)
		require.NoError(t, err)
		gotVec, err := loaded.Pipeline.Transform(probe)
		require.NoError(t, err)
		assert.Equal(t, wantVec, gotVec, "probe %q", probe)

		wantScaled, err := b.Scaler.Transform(wantVec)
		require.NoError(t, err)
		gotScaled, err := loaded.Scaler.Transform(gotVec)
		require.NoError(t, err)

		_, wantP, err := b.Classifier.PredictProba(wantScaled)
		require.NoError(t, err)
		_, gotP, err := loaded.Classifier.PredictProba(gotScaled)
		require.NoError(t, err)
		assert.Equal(t, wantP, gotP, "probe %q", probe)
	}
}

func TestSaveLoadRoundTripForest(t *testing.T) {
	b := fittedBundleWith(t, classifier.NewRandomForest(25))
	path := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, b.Save(path))

	loaded, err := Load(path, func(string) (core.Classifier, error) {
		return &classifier.RandomForest{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, classifier.KindForest, loaded.Classifier.Kind())
	assert.Equal(t, b.Classifier.NumFeatures(), loaded.Classifier.NumFeatures())

	probes := []string{
		"URGENT: verify your account now",
		"Thanks again for the order",
		"",
	}
	for _, probe := range probes {
		vec, err := b.Pipeline.Transform(probe)
		require.NoError(t, err)
		scaled, err := b.Scaler.Transform(vec)
		require.NoError(t, err)

		wantLegit, wantPhish, err := b.Classifier.PredictProba(scaled)
		require.NoError(t, err)
		gotLegit, gotPhish, err := loaded.Classifier.PredictProba(scaled)
		require.NoError(t, err)
		assert.Equal(t, wantLegit, gotLegit, "probe %q", probe)
		assert.Equal(t, wantPhish, gotPhish, "probe %q", probe)
	}
}

func TestSaveRejectsMissingComponent(t *testing.T) {
	b := fittedBundle(t)
	b.Classifier = nil

	err := b.Save(filepath.Join(t.TempDir(), "model.gob"))
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMissingComponent)
}

func TestSaveLeavesNoPartialFile(t *testing.T) {
	b := fittedBundle(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "model.gob")
	require.NoError(t, b.Save(path))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "model.gob", entries[0].Name())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.gob"), testFactory)
	require.Error(t, err)
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.gob")
	require.NoError(t, os.WriteFile(path, []byte("not a gob stream"), 0644))

	_, err := Load(path, testFactory)
	require.Error(t, err)
}

func TestLoadShapeMismatch(t *testing.T) {
	b := fittedBundle(t)
	b.Schema.Names = append(b.Schema.Names, "phantom_column")
	path := filepath.Join(t.TempDir(), "model.gob")
	require.NoError(t, b.Save(path))

	_, err := Load(path, testFactory)
	require.Error(t, err)
	var shapeErr *core.ShapeMismatchError
	assert.ErrorAs(t, err, &shapeErr)
}
