package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFitted is returned when transform or predict is called on a
	// component that has not been fitted or loaded.
	ErrNotFitted = errors.New("component is not fitted")

	// ErrMissingComponent is returned when a persisted model bundle
	// lacks one of its three fitted components.
	ErrMissingComponent = errors.New("model bundle is missing a component")

	// ErrUnsupportedVersion is returned when a persisted model bundle
	// was written in an unknown format version.
	ErrUnsupportedVersion = errors.New("unsupported model bundle version")

	// ErrEmptyCorpus is returned when training is attempted on an empty corpus.
	ErrEmptyCorpus = errors.New("training corpus is empty")

	// ErrSingleClass is returned when every corpus row carries the same label.
	ErrSingleClass = errors.New("training corpus contains a single class")
)

// ShapeMismatchError reports a disagreement between the feature-vector
// width a component expects and the width it was given. It is fatal to
// the call; vectors are never truncated or padded.
type ShapeMismatchError struct {
	Component string
	Want      int
	Got       int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%s: feature length mismatch: want %d, got %d", e.Component, e.Want, e.Got)
}
