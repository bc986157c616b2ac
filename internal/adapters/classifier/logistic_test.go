package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/phishing-detector/internal/core"
)

// A tiny linearly separable problem: phishing rows sit at positive
// coordinates, legitimate at negative.
var (
	separableX = [][]float64{
		{1.0, 0.8}, {0.9, 1.1}, {1.2, 0.9}, {0.8, 1.0},
		{-1.0, -0.9}, {-1.1, -1.0}, {-0.8, -1.2}, {-0.9, -0.8},
	}
	separableY = []int{1, 1, 1, 1, 0, 0, 0, 0}
)

func TestLogisticFitAndPredict(t *testing.T) {
	clf := NewLogisticRegression(0, 0, 0)
	require.NoError(t, clf.Fit(separableX, separableY))
	assert.Equal(t, 2, clf.NumFeatures())

	for i, row := range separableX {
		pred, err := clf.Predict(row)
		require.NoError(t, err)
		assert.Equal(t, separableY[i], pred, "row %d", i)
	}
}

func TestLogisticProbabilitiesSumToOne(t *testing.T) {
	clf := NewLogisticRegression(0, 0, 0)
	require.NoError(t, clf.Fit(separableX, separableY))

	probes := [][]float64{{1, 1}, {-1, -1}, {0, 0}, {0.3, -0.2}}
	for _, probe := range probes {
		pLegit, pPhish, err := clf.PredictProba(probe)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, pLegit+pPhish, 1e-12)
		assert.GreaterOrEqual(t, pLegit, 0.0)
		assert.LessOrEqual(t, pLegit, 1.0)
		assert.GreaterOrEqual(t, pPhish, 0.0)
		assert.LessOrEqual(t, pPhish, 1.0)
	}
}

func TestLogisticDeterministicFit(t *testing.T) {
	a := NewLogisticRegression(200, 0.1, 1e-4)
	b := NewLogisticRegression(200, 0.1, 1e-4)
	require.NoError(t, a.Fit(separableX, separableY))
	require.NoError(t, b.Fit(separableX, separableY))

	_, pa, err := a.PredictProba([]float64{0.5, 0.5})
	require.NoError(t, err)
	_, pb, err := b.PredictProba([]float64{0.5, 0.5})
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}

func TestLogisticNotFitted(t *testing.T) {
	clf := NewLogisticRegression(0, 0, 0)

	_, _, err := clf.PredictProba([]float64{1, 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFitted)
}

func TestLogisticShapeMismatch(t *testing.T) {
	clf := NewLogisticRegression(0, 0, 0)
	require.NoError(t, clf.Fit(separableX, separableY))

	_, _, err := clf.PredictProba([]float64{1, 2, 3})
	var shapeErr *core.ShapeMismatchError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 2, shapeErr.Want)
	assert.Equal(t, 3, shapeErr.Got)
}

func TestLogisticRejectsBadLabels(t *testing.T) {
	clf := NewLogisticRegression(0, 0, 0)

	err := clf.Fit([][]float64{{1}, {2}}, []int{0, 7})
	require.Error(t, err)
}

func TestLogisticSnapshotRoundTrip(t *testing.T) {
	clf := NewLogisticRegression(0, 0, 0)
	require.NoError(t, clf.Fit(separableX, separableY))

	blob, err := clf.MarshalBinary()
	require.NoError(t, err)

	restored := &LogisticRegression{}
	require.NoError(t, restored.UnmarshalBinary(blob))
	assert.Equal(t, clf.NumFeatures(), restored.NumFeatures())

	probe := []float64{0.4, -0.7}
	_, want, err := clf.PredictProba(probe)
	require.NoError(t, err)
	_, got, err := restored.PredictProba(probe)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
