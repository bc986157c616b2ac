package textproc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanStripsHTML(t *testing.T) {
	s := NewSanitizer()

	got := s.Clean("<p>hi</p>")
	assert.NotContains(t, got, "<")
	assert.NotContains(t, got, ">")
	assert.Contains(t, got, "hi")
}

func TestCleanRemovesURLs(t *testing.T) {
	s := NewSanitizer()

	got := s.Clean("visit http://example.com/offer today")
	assert.NotContains(t, got, "example")
	assert.Contains(t, got, "visit")
	assert.Contains(t, got, "today")
}

func TestCleanRemovesEmailAddresses(t *testing.T) {
	s := NewSanitizer()

	got := s.Clean("contact winner@lottery-alerts.com immediately")
	assert.NotContains(t, got, "winner")
	assert.NotContains(t, got, "lottery")
	assert.Contains(t, got, "contact")
	assert.Contains(t, got, "immediately")
}

func TestCleanDropsDigitsAndPunctuation(t *testing.T) {
	s := NewSanitizer()

	got := s.Clean("You won $1,000,000!!! Claim #42 now.")
	for _, r := range got {
		ok := r == ' ' || r == '\n' || r == '\t' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		require.True(t, ok, "unexpected rune %q in %q", r, got)
	}
	assert.Contains(t, got, "Claim")
}

func TestCleanFoldsAccents(t *testing.T) {
	s := NewSanitizer()

	got := s.Clean("visit the café")
	assert.Contains(t, got, "cafe")
}

func TestCleanEmptyInput(t *testing.T) {
	s := NewSanitizer()

	assert.Equal(t, "", s.Clean(""))
}

func TestCleanNeverPanicsOnArbitraryInput(t *testing.T) {
	s := NewSanitizer()

	inputs := []string{
		"<html><body onload=x>",
		"\x00\xff\xfe",
		strings.Repeat("<", 100),
		"普通のテキスト",
		"<a href='http://x.y'>клик</a>",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { s.Clean(in) })
	}
}

func TestExtractURLs(t *testing.T) {
	urls := ExtractURLs("go to https://secure-login.example.com/verify and http://x.co")
	require.Len(t, urls, 2)
	assert.Equal(t, "https://secure-login.example.com/verify", urls[0])

	assert.Nil(t, ExtractURLs(""))
	assert.Empty(t, ExtractURLs("no links here"))
}

func TestExtractEmails(t *testing.T) {
	emails := ExtractEmails("mail admin@example.com or support@help.example.org now")
	require.Len(t, emails, 2)
	assert.Equal(t, "admin@example.com", emails[0])

	assert.Nil(t, ExtractEmails(""))
}
