// Package bundle persists the fitted model as one atomic artifact: the
// feature pipeline, the scaler and the classifier, versioned and saved
// or loaded as a unit.
package bundle

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mikey/phishing-detector/internal/core"
	"github.com/mikey/phishing-detector/internal/features"
)

// FormatVersion is the on-disk format version this package writes.
const FormatVersion = 1

// Bundle is the immutable snapshot of all fitted components required
// for inference. All three components are fitted together on the same
// corpus; mixing components from different training runs fails the
// shape checks on load.
type Bundle struct {
	CreatedAt  time.Time
	Schema     core.FeatureSchema
	Pipeline   *features.Pipeline
	Scaler     *features.StandardScaler
	Classifier core.Classifier
}

// ClassifierFactory reconstructs an empty classifier backend of the
// given kind, ready for UnmarshalBinary.
type ClassifierFactory func(kind string) (core.Classifier, error)

type bundleFile struct {
	FormatVersion  int
	CreatedAt      time.Time
	Schema         core.FeatureSchema
	Pipeline       features.PipelineState
	Scaler         features.StandardScalerState
	ClassifierKind string
	Classifier     []byte
}

// Save writes the bundle to path as a single atomic artifact: the file
// is assembled under a temporary name in the target directory and
// renamed into place, so a crashed save never leaves a partial bundle.
func (b *Bundle) Save(path string) error {
	if b.Pipeline == nil || b.Scaler == nil || b.Classifier == nil {
		return fmt.Errorf("save bundle: %w", core.ErrMissingComponent)
	}

	blob, err := b.Classifier.MarshalBinary()
	if err != nil {
		return fmt.Errorf("save bundle: %w", err)
	}

	file := bundleFile{
		FormatVersion:  FormatVersion,
		CreatedAt:      b.CreatedAt,
		Schema:         b.Schema,
		Pipeline:       b.Pipeline.State(),
		Scaler:         b.Scaler.State(),
		ClassifierKind: b.Classifier.Kind(),
		Classifier:     blob,
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".bundle-*")
	if err != nil {
		return fmt.Errorf("save bundle: %w", err)
	}
	if err := gob.NewEncoder(tmp).Encode(file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encode bundle: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save bundle: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save bundle: %w", err)
	}
	return nil
}

// Load reads a bundle from path, reconstructing the classifier through
// newClassifier. It fails on an unreadable or corrupt file, an unknown
// format version, a missing component, or any disagreement between the
// schema length and the widths the components expect.
func Load(path string, newClassifier ClassifierFactory) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open bundle: %w", err)
	}
	defer f.Close()

	var file bundleFile
	if err := gob.NewDecoder(f).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode bundle: %w", err)
	}
	if file.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("bundle format version %d: %w", file.FormatVersion, core.ErrUnsupportedVersion)
	}
	if !file.Pipeline.Vectorizer.Fitted {
		return nil, fmt.Errorf("feature pipeline not fitted: %w", core.ErrMissingComponent)
	}
	if !file.Scaler.Fitted {
		return nil, fmt.Errorf("scaler not fitted: %w", core.ErrMissingComponent)
	}
	if file.ClassifierKind == "" || len(file.Classifier) == 0 {
		return nil, fmt.Errorf("classifier missing: %w", core.ErrMissingComponent)
	}

	pipeline := features.RestorePipeline(file.Pipeline)
	scaler := features.RestoreStandardScaler(file.Scaler)
	clf, err := newClassifier(file.ClassifierKind)
	if err != nil {
		return nil, fmt.Errorf("load bundle: %w", err)
	}
	if err := clf.UnmarshalBinary(file.Classifier); err != nil {
		return nil, fmt.Errorf("load bundle: %w", err)
	}

	want := file.Schema.Length()
	if got := pipeline.NumFeatures(); got != want {
		return nil, &core.ShapeMismatchError{Component: "bundle feature pipeline", Want: want, Got: got}
	}
	if got := scaler.NumFeatures(); got != want {
		return nil, &core.ShapeMismatchError{Component: "bundle scaler", Want: want, Got: got}
	}
	if got := clf.NumFeatures(); got != want {
		return nil, &core.ShapeMismatchError{Component: "bundle classifier", Want: want, Got: got}
	}

	return &Bundle{
		CreatedAt:  file.CreatedAt,
		Schema:     file.Schema,
		Pipeline:   pipeline,
		Scaler:     scaler,
		Classifier: clf,
	}, nil
}
