package features

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mikey/phishing-detector/internal/textproc"
)

// Widths of the two statistical feature blocks. They are part of the
// public vector layout and never change after a model is fitted.
const (
	NumBasicFeatures    = 8
	NumAdvancedFeatures = 5
)

var sentencePattern = regexp.MustCompile(`[.!?]+`)

// suspiciousTerms are matched case-insensitively as substrings of the
// raw email text.
var suspiciousTerms = []string{
	"urgent", "immediate", "act now", "limited time", "expires",
	"click here", "click now", "verify", "confirm", "update",
	"suspend", "suspended", "account", "security", "alert",
	"warning", "congratulations", "winner", "prize", "lottery",
	"free", "bonus", "offer", "deal", "discount", "save",
	"money", "cash", "credit", "loan", "debt", "investment",
	"guarantee", "risk-free", "no obligation", "act fast",
	"don't delay", "hurry", "rush", "now", "today only",
	"limited offer", "exclusive", "special", "amazing",
	"incredible", "unbelievable", "fantastic", "wonderful",
}

// StatExtractor computes fixed-width statistical features directly on
// raw, unsanitized email text. Its methods are pure functions and safe
// for concurrent use.
type StatExtractor struct{}

// NewStatExtractor creates a new StatExtractor.
func NewStatExtractor() *StatExtractor {
	return &StatExtractor{}
}

// BasicStats returns the 8 basic lexical/structural features of text.
// Empty input returns all zeros.
func (e *StatExtractor) BasicStats(text string) []float64 {
	out := make([]float64, NumBasicFeatures)
	if text == "" {
		return out
	}

	runeCount := float64(utf8.RuneCountInString(text))
	wordCount := float64(len(strings.Fields(text)))

	lower := strings.ToLower(text)
	suspicious := 0
	for _, term := range suspiciousTerms {
		if strings.Contains(lower, term) {
			suspicious++
		}
	}

	out[0] = runeCount
	out[1] = wordCount
	// char_count is a historical duplicate of text_length; both columns
	// are part of the persisted vector layout.
	out[2] = runeCount
	out[3] = float64(len(textproc.ExtractURLs(text)))
	out[4] = float64(len(textproc.ExtractEmails(text)))
	out[5] = float64(suspicious)
	out[6] = float64(countUppercase(text)) / runeCount
	out[7] = float64(strings.Count(text, "!"))
	return out
}

// AdvancedStats returns the 5 advanced linguistic features of text.
// Empty input returns all zeros.
func (e *StatExtractor) AdvancedStats(text string) []float64 {
	out := make([]float64, NumAdvancedFeatures)
	if text == "" {
		return out
	}

	words := strings.Fields(text)
	var avgWordLength float64
	if len(words) > 0 {
		total := 0
		for _, w := range words {
			total += utf8.RuneCountInString(w)
		}
		avgWordLength = float64(total) / float64(len(words))
	}

	// Sentence count mirrors splitting on runs of terminators, so a
	// trailing terminator contributes one empty part. Always >= 1.
	sentenceCount := len(sentencePattern.Split(text, -1))
	if sentenceCount < 1 {
		sentenceCount = 1
	}

	out[0] = avgWordLength
	out[1] = float64(sentenceCount)
	out[2] = float64(len(words)) / float64(sentenceCount)
	out[3] = float64(strings.Count(text, "?"))
	out[4] = float64(countUppercase(text))
	return out
}

// BasicFeatureNames returns the column names of BasicStats, in order.
func BasicFeatureNames() []string {
	return []string{
		"text_length", "word_count", "char_count", "url_count",
		"email_count", "suspicious_count", "uppercase_ratio", "exclamation_count",
	}
}

// AdvancedFeatureNames returns the column names of AdvancedStats, in order.
func AdvancedFeatureNames() []string {
	return []string{
		"avg_word_length", "sentence_count", "avg_sentence_length",
		"question_count", "capital_count",
	}
}

func countUppercase(text string) int {
	n := 0
	for _, r := range text {
		if unicode.IsUpper(r) {
			n++
		}
	}
	return n
}
