// Package constraint checks that rendered page text contains an expected
// string, ignoring case and layout whitespace.
package constraint

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// MaxShownRunes is how much page content a failure message quotes.
const MaxShownRunes = 300

var whitespaceRun = regexp.MustCompile(`\s{2,}`)

// Page matches page content containing a piece of text.
type Page struct {
	expected string
	uri      string

	// OutputDir, when set, is named in failure messages for content too long
	// to be quoted in full.
	OutputDir string
}

// NewPage returns a constraint for content containing expected. uri names
// the page in failure messages and may be empty.
func NewPage(expected, uri string) *Page {
	return &Page{
		expected: Normalize(expected),
		uri:      uri,
	}
}

// Normalize turns line breaks into spaces, collapses runs of whitespace and
// trims both ends.
func Normalize(text string) string {
	text = strings.NewReplacer("\r", " ", "\n", " ").Replace(text)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
}

// Matches reports whether content contains the expected text.
func (p *Page) Matches(content string) bool {
	// cases.Caser keeps state, so one is built per call.
	fold := cases.Fold()
	return strings.Contains(fold.String(Normalize(content)), fold.String(p.expected))
}

func (p *Page) String() string {
	return `contains "` + p.expected + `"`
}

// FailureDescription describes content that did not match.
func (p *Page) FailureDescription(content string) string {
	var sb strings.Builder
	if p.uri != "" {
		sb.WriteString("on page ")
		sb.WriteString(p.uri)
	}
	sb.WriteString("\n--> ")
	sb.WriteString(truncateRunes(content, MaxShownRunes))
	if p.OutputDir != "" && utf8.RuneCountInString(content) > MaxShownRunes {
		fmt.Fprintf(&sb, "\n[Content too long to display. See complete response in '%s' directory]", p.OutputDir)
	}
	sb.WriteString("\n--> ")
	sb.WriteString(p.String())
	return sb.String()
}

// Evaluate returns nil when content matches and an *AssertionError otherwise.
func (p *Page) Evaluate(content string) error {
	if p.Matches(content) {
		return nil
	}
	return &AssertionError{Description: p.FailureDescription(content)}
}

// AssertionError is returned by Evaluate for content that does not match.
type AssertionError struct {
	Description string
}

func (e *AssertionError) Error() string {
	return "Failed asserting that " + e.Description + "."
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
