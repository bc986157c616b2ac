package features

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/mikey/phishing-detector/internal/core"
)

// StandardScaler standardizes feature vectors to zero mean and unit
// variance per column. The deviation is the sample standard deviation
// (n-1 divisor). Columns whose fitted deviation is zero or undefined
// are only centered, never divided, so constant features cannot produce
// NaN or Inf.
type StandardScaler struct {
	mean   []float64
	stddev []float64
	fitted bool
}

// StandardScalerState is the serializable snapshot of a fitted scaler.
type StandardScalerState struct {
	Mean   []float64
	Stddev []float64
	Fitted bool
}

// NewStandardScaler creates an unfitted scaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit computes per-column mean and standard deviation over the matrix.
func (s *StandardScaler) Fit(matrix [][]float64) error {
	if len(matrix) == 0 {
		return fmt.Errorf("fit scaler: %w", core.ErrEmptyCorpus)
	}
	width := len(matrix[0])
	for _, row := range matrix {
		if len(row) != width {
			return &core.ShapeMismatchError{Component: "scaler fit", Want: width, Got: len(row)}
		}
	}

	s.mean = make([]float64, width)
	s.stddev = make([]float64, width)
	column := make([]float64, len(matrix))
	for j := 0; j < width; j++ {
		for i, row := range matrix {
			column[i] = row[j]
		}
		mean, stddev := stat.MeanStdDev(column, nil)
		if math.IsNaN(stddev) || math.IsInf(stddev, 0) {
			stddev = 0
		}
		s.mean[j] = mean
		s.stddev[j] = stddev
	}
	s.fitted = true
	return nil
}

// Transform standardizes one feature vector using the fitted statistics.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if !s.fitted {
		return nil, fmt.Errorf("scaler: %w", core.ErrNotFitted)
	}
	if len(x) != len(s.mean) {
		return nil, &core.ShapeMismatchError{Component: "scaler", Want: len(s.mean), Got: len(x)}
	}

	out := make([]float64, len(x))
	for j := range x {
		out[j] = x[j] - s.mean[j]
		if s.stddev[j] > 0 {
			out[j] /= s.stddev[j]
		}
	}
	return out, nil
}

// TransformAll standardizes a whole matrix, row by row.
func (s *StandardScaler) TransformAll(matrix [][]float64) ([][]float64, error) {
	out := make([][]float64, len(matrix))
	for i, row := range matrix {
		scaled, err := s.Transform(row)
		if err != nil {
			return nil, err
		}
		out[i] = scaled
	}
	return out, nil
}

// NumFeatures returns the fitted column count, or 0 before Fit.
func (s *StandardScaler) NumFeatures() int {
	return len(s.mean)
}

// State snapshots the fitted scaler for persistence.
func (s *StandardScaler) State() StandardScalerState {
	return StandardScalerState{
		Mean:   append([]float64(nil), s.mean...),
		Stddev: append([]float64(nil), s.stddev...),
		Fitted: s.fitted,
	}
}

// RestoreStandardScaler rebuilds a scaler from a persisted snapshot.
func RestoreStandardScaler(state StandardScalerState) *StandardScaler {
	return &StandardScaler{
		mean:   append([]float64(nil), state.Mean...),
		stddev: append([]float64(nil), state.Stddev...),
		fitted: state.Fitted,
	}
}
