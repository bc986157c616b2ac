package textproc

import (
	"strings"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
)

// minTokenLength drops tokens too short to carry lexical signal.
const minTokenLength = 3

// Tokenizer lowercases text, splits it into word tokens, filters out
// stopwords and short tokens and stems the survivors. Output is fully
// determined by the input string.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a tokenizer with the built-in English stopword set.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{stopwords: englishStopwords()}
}

// Tokenize returns the stemmed, filtered tokens of text. Empty input
// yields nil.
func (t *Tokenizer) Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if utf8.RuneCountInString(tok) < minTokenLength {
			continue
		}
		if _, stop := t.stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, english.Stem(tok, false))
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}
