package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicStatsEmptyInput(t *testing.T) {
	e := NewStatExtractor()

	got := e.BasicStats("")
	require.Len(t, got, NumBasicFeatures)
	assert.Equal(t, make([]float64, NumBasicFeatures), got)
}

func TestBasicStatsCounts(t *testing.T) {
	e := NewStatExtractor()

	text := "Win FREE money!!! Contact winner@example.com or visit http://example.com"
	got := e.BasicStats(text)
	require.Len(t, got, NumBasicFeatures)

	assert.Equal(t, got[0], got[2], "char_count duplicates text_length")
	assert.Equal(t, 8.0, got[1], "word_count")
	assert.Equal(t, 1.0, got[3], "url_count")
	assert.Equal(t, 1.0, got[4], "email_count")
	// "free", "money", "winner" from the suspicious-term list.
	assert.Equal(t, 3.0, got[5], "suspicious_count")
	assert.Greater(t, got[6], 0.0, "uppercase_ratio")
	assert.Less(t, got[6], 1.0, "uppercase_ratio")
	assert.Equal(t, 3.0, got[7], "exclamation_count")
}

func TestAdvancedStatsEmptyInput(t *testing.T) {
	e := NewStatExtractor()

	got := e.AdvancedStats("")
	require.Len(t, got, NumAdvancedFeatures)
	assert.Equal(t, make([]float64, NumAdvancedFeatures), got)
}

func TestAdvancedStatsCounts(t *testing.T) {
	e := NewStatExtractor()

	got := e.AdvancedStats("Hi there. How are you?")
	require.Len(t, got, NumAdvancedFeatures)

	// Splitting on terminator runs leaves a trailing empty part, so two
	// terminated sentences count as three parts.
	assert.Equal(t, 3.0, got[1], "sentence_count")
	assert.InDelta(t, 5.0/3.0, got[2], 1e-12, "avg_sentence_length")
	assert.Equal(t, 1.0, got[3], "question_count")
	assert.Equal(t, 2.0, got[4], "capital_count")
}

func TestAdvancedStatsAverageWordLength(t *testing.T) {
	e := NewStatExtractor()

	got := e.AdvancedStats("ab abcd")
	assert.Equal(t, 3.0, got[0], "avg_word_length")
}

func TestStatsDeterministic(t *testing.T) {
	e := NewStatExtractor()

	text := "URGENT: verify your account now!"
	assert.Equal(t, e.BasicStats(text), e.BasicStats(text))
	assert.Equal(t, e.AdvancedStats(text), e.AdvancedStats(text))
}

func TestFeatureNameWidths(t *testing.T) {
	assert.Len(t, BasicFeatureNames(), NumBasicFeatures)
	assert.Len(t, AdvancedFeatureNames(), NumAdvancedFeatures)
}
