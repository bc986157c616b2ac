package textproc

import (
	"regexp"
	"unicode"

	"github.com/jaytaylor/html2text"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	urlPattern       = regexp.MustCompile(`http[s]?://(?:[a-zA-Z]|[0-9]|[$-_@.&+]|[!*\(\),]|(?:%[0-9a-fA-F][0-9a-fA-F]))+`)
	emailPattern     = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	nonLetterPattern = regexp.MustCompile(`[^a-zA-Z\s]`)
)

// Sanitizer reduces raw email text to ASCII letters and whitespace.
// It removes HTML markup, URL-like and email-address-like substrings,
// folds accented letters onto their base letter and drops everything
// else. Every string is valid input; cleaning never fails.
type Sanitizer struct{}

// NewSanitizer creates a new Sanitizer.
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Clean runs the full cleaning pass. Empty input returns the empty string.
func (s *Sanitizer) Clean(text string) string {
	if text == "" {
		return ""
	}
	text = s.stripHTML(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	text = foldDiacritics(text)
	return nonLetterPattern.ReplaceAllString(text, "")
}

// stripHTML returns only the visible text of a document. html2text
// rejects some malformed markup; cleaning must never fail, so those
// inputs fall back to a plain tag-stripping regex.
func (s *Sanitizer) stripHTML(text string) string {
	plain, err := html2text.FromString(text, html2text.Options{TextOnly: true})
	if err != nil {
		return tagPattern.ReplaceAllString(text, " ")
	}
	return plain
}

// foldDiacritics rewrites accented letters to their base letter so the
// non-letter filter keeps them instead of deleting the whole rune.
func foldDiacritics(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return folded
}

// ExtractURLs returns every scheme-qualified URL substring in text.
func ExtractURLs(text string) []string {
	if text == "" {
		return nil
	}
	return urlPattern.FindAllString(text, -1)
}

// ExtractEmails returns every email-address-like substring in text.
func ExtractEmails(text string) []string {
	if text == "" {
		return nil
	}
	return emailPattern.FindAllString(text, -1)
}
