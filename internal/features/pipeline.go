package features

import (
	"github.com/mikey/phishing-detector/internal/core"
)

// SchemaVersion identifies the feature layout produced by this package:
// 8 basic stats, 5 advanced stats, then the lexical block.
const SchemaVersion = 1

// Pipeline composes the statistical extractor and the lexical
// vectorizer into one fixed-length feature vector per email. Statistical
// features are computed on the raw text; lexical features on its
// sanitized, tokenized form. After Fit the output length is constant.
type Pipeline struct {
	stats      *StatExtractor
	vectorizer *LexicalVectorizer
}

// PipelineState is the serializable snapshot of a fitted pipeline.
type PipelineState struct {
	Vectorizer LexicalVectorizerState
}

// NewPipeline creates an unfitted feature pipeline.
func NewPipeline(maxFeatures, ngramMax int) *Pipeline {
	return &Pipeline{
		stats:      NewStatExtractor(),
		vectorizer: NewLexicalVectorizer(maxFeatures, ngramMax),
	}
}

// Fit builds the lexical vocabulary from the training corpus. The
// statistical blocks need no fitting.
func (p *Pipeline) Fit(corpus []string) error {
	return p.vectorizer.Fit(corpus)
}

// Transform produces the full feature vector for one email:
// basic stats ++ advanced stats ++ lexical weights, in that fixed order.
func (p *Pipeline) Transform(text string) ([]float64, error) {
	lexical, err := p.vectorizer.Transform(text)
	if err != nil {
		return nil, err
	}
	vec := make([]float64, 0, NumBasicFeatures+NumAdvancedFeatures+len(lexical))
	vec = append(vec, p.stats.BasicStats(text)...)
	vec = append(vec, p.stats.AdvancedStats(text)...)
	vec = append(vec, lexical...)
	return vec, nil
}

// NumFeatures returns the post-fit output length, 13 + vocabulary size.
func (p *Pipeline) NumFeatures() int {
	return NumBasicFeatures + NumAdvancedFeatures + p.vectorizer.Dimension()
}

// FeatureNames returns a human-readable label for every column, in
// vector order.
func (p *Pipeline) FeatureNames() []string {
	names := make([]string, 0, p.NumFeatures())
	names = append(names, BasicFeatureNames()...)
	names = append(names, AdvancedFeatureNames()...)
	for _, term := range p.vectorizer.Terms() {
		names = append(names, "tfidf_"+term)
	}
	return names
}

// Schema returns the feature schema of the fitted pipeline.
func (p *Pipeline) Schema() core.FeatureSchema {
	return core.FeatureSchema{Version: SchemaVersion, Names: p.FeatureNames()}
}

// State snapshots the fitted pipeline for persistence.
func (p *Pipeline) State() PipelineState {
	return PipelineState{Vectorizer: p.vectorizer.State()}
}

// RestorePipeline rebuilds a pipeline from a persisted snapshot.
func RestorePipeline(state PipelineState) *Pipeline {
	return &Pipeline{
		stats:      NewStatExtractor(),
		vectorizer: RestoreLexicalVectorizer(state.Vectorizer),
	}
}

// Fitted reports whether the lexical vocabulary has been built.
func (p *Pipeline) Fitted() bool {
	return p.vectorizer.fitted
}
