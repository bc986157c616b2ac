package features

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/mikey/phishing-detector/internal/core"
	"github.com/mikey/phishing-detector/internal/textproc"
)

// LexicalVectorizer builds a TF-IDF vocabulary of unigrams and bigrams
// over the sanitized, tokenized training corpus and projects arbitrary
// text onto it. The vocabulary is built once by Fit and immutable
// afterwards; refitting replaces it wholesale, which invalidates any
// scaler or classifier fitted against the old one.
type LexicalVectorizer struct {
	sanitizer   *textproc.Sanitizer
	tokenizer   *textproc.Tokenizer
	maxFeatures int
	ngramMax    int

	vocabulary map[string]int
	terms      []string
	idf        []float64
	fitted     bool
}

// LexicalVectorizerState is the serializable snapshot of a fitted vectorizer.
type LexicalVectorizerState struct {
	MaxFeatures int
	NgramMax    int
	Terms       []string
	IDF         []float64
	Fitted      bool
}

// NewLexicalVectorizer creates an unfitted vectorizer. maxFeatures
// bounds the vocabulary size (0 means unbounded); ngramMax of 2 adds
// token bigrams alongside unigrams.
func NewLexicalVectorizer(maxFeatures, ngramMax int) *LexicalVectorizer {
	if ngramMax < 1 {
		ngramMax = 1
	}
	return &LexicalVectorizer{
		sanitizer:   textproc.NewSanitizer(),
		tokenizer:   textproc.NewTokenizer(),
		maxFeatures: maxFeatures,
		ngramMax:    ngramMax,
	}
}

// Fit builds the vocabulary and IDF table from the corpus. Terms are
// capped at maxFeatures, chosen by total corpus frequency with
// alphabetical tie-breaking; the final column order is alphabetical.
func (v *LexicalVectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return fmt.Errorf("fit lexical vectorizer: %w", core.ErrEmptyCorpus)
	}

	termFreq := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, term := range v.termsOf(doc) {
			termFreq[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	selected := make([]string, 0, len(termFreq))
	for term := range termFreq {
		selected = append(selected, term)
	}
	sort.Slice(selected, func(i, j int) bool {
		if termFreq[selected[i]] != termFreq[selected[j]] {
			return termFreq[selected[i]] > termFreq[selected[j]]
		}
		return selected[i] < selected[j]
	})
	if v.maxFeatures > 0 && len(selected) > v.maxFeatures {
		selected = selected[:v.maxFeatures]
	}
	sort.Strings(selected)

	n := float64(len(corpus))
	v.vocabulary = make(map[string]int, len(selected))
	v.idf = make([]float64, len(selected))
	for i, term := range selected {
		v.vocabulary[term] = i
		// Smoothed IDF, so terms present in every document keep a
		// positive weight.
		v.idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}
	v.terms = selected
	v.fitted = true
	return nil
}

// Transform projects text onto the fitted vocabulary. Each entry is the
// term count weighted by IDF; the vector is L2 normalized. Terms absent
// from the vocabulary contribute nothing, so unseen text maps to the
// zero vector.
func (v *LexicalVectorizer) Transform(text string) ([]float64, error) {
	if !v.fitted {
		return nil, fmt.Errorf("lexical vectorizer: %w", core.ErrNotFitted)
	}

	vec := make([]float64, len(v.terms))
	counts := make(map[int]int)
	for _, term := range v.termsOf(text) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}
	for idx, c := range counts {
		vec[idx] = float64(c) * v.idf[idx]
	}
	if norm := floats.Norm(vec, 2); norm > 0 {
		floats.Scale(1/norm, vec)
	}
	return vec, nil
}

// Dimension returns the fitted vocabulary size, or 0 before Fit.
func (v *LexicalVectorizer) Dimension() int {
	return len(v.terms)
}

// Terms returns the vocabulary terms in column order.
func (v *LexicalVectorizer) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// State snapshots the fitted vectorizer for persistence.
func (v *LexicalVectorizer) State() LexicalVectorizerState {
	return LexicalVectorizerState{
		MaxFeatures: v.maxFeatures,
		NgramMax:    v.ngramMax,
		Terms:       v.Terms(),
		IDF:         append([]float64(nil), v.idf...),
		Fitted:      v.fitted,
	}
}

// RestoreLexicalVectorizer rebuilds a vectorizer from a persisted snapshot.
func RestoreLexicalVectorizer(state LexicalVectorizerState) *LexicalVectorizer {
	v := NewLexicalVectorizer(state.MaxFeatures, state.NgramMax)
	v.terms = append([]string(nil), state.Terms...)
	v.idf = append([]float64(nil), state.IDF...)
	v.vocabulary = make(map[string]int, len(v.terms))
	for i, term := range v.terms {
		v.vocabulary[term] = i
	}
	v.fitted = state.Fitted
	return v
}

// termsOf sanitizes and tokenizes one document and expands the token
// sequence into vocabulary terms (unigrams plus n-grams up to ngramMax).
func (v *LexicalVectorizer) termsOf(text string) []string {
	tokens := v.tokenizer.Tokenize(v.sanitizer.Clean(text))
	if len(tokens) == 0 {
		return nil
	}
	terms := make([]string, 0, len(tokens)*v.ngramMax)
	terms = append(terms, tokens...)
	for n := 2; n <= v.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}
