package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikey/phishing-detector/internal/core"
)

func TestScalerStandardizes(t *testing.T) {
	s := NewStandardScaler()
	require.NoError(t, s.Fit([][]float64{
		{1, 10},
		{3, 20},
	}))

	got, err := s.Transform([]float64{3, 20})
	require.NoError(t, err)

	// Sample standard deviation of {1, 3} is sqrt(2), of {10, 20} is 5*sqrt(2).
	assert.InDelta(t, 1/math.Sqrt2, got[0], 1e-12)
	assert.InDelta(t, 5/(5*math.Sqrt2), got[1], 1e-12)
}

func TestScalerZeroVarianceColumn(t *testing.T) {
	s := NewStandardScaler()
	require.NoError(t, s.Fit([][]float64{
		{1, 7},
		{2, 7},
		{3, 7},
	}))

	got, err := s.Transform([]float64{2, 9})
	require.NoError(t, err)

	// The constant column is centered but never divided.
	assert.Equal(t, 2.0, got[1])
	for _, v := range got {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
}

func TestScalerSingleRowFit(t *testing.T) {
	s := NewStandardScaler()
	require.NoError(t, s.Fit([][]float64{{4, 2}}))

	got, err := s.Transform([]float64{4, 2})
	require.NoError(t, err)
	for _, v := range got {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
	}
}

func TestScalerNotFitted(t *testing.T) {
	s := NewStandardScaler()

	_, err := s.Transform([]float64{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFitted)
}

func TestScalerShapeMismatch(t *testing.T) {
	s := NewStandardScaler()
	require.NoError(t, s.Fit([][]float64{{1, 2}, {3, 4}}))

	_, err := s.Transform([]float64{1, 2, 3})
	require.Error(t, err)

	var shapeErr *core.ShapeMismatchError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 2, shapeErr.Want)
	assert.Equal(t, 3, shapeErr.Got)
}

func TestScalerStateRoundTrip(t *testing.T) {
	s := NewStandardScaler()
	require.NoError(t, s.Fit([][]float64{{1, 5}, {3, 6}, {5, 7}}))

	restored := RestoreStandardScaler(s.State())
	want, err := s.Transform([]float64{2, 6})
	require.NoError(t, err)
	got, err := restored.Transform([]float64{2, 6})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
