package constraint

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"crlf", "a\r\nb", "a b"},
		{"trim", "  a b  ", "a b"},
		{"whitespace run", "a \t\n b", "a b"},
		{"single tab kept", "a\tb", "a\tb"},
		{"lines", "<p>\n  Hello,\n  world\n</p>", "<p> Hello, world </p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPage_Matches(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		content  string
		want     bool
	}{
		{"substring", "text", "long text string", true},
		{"missing", "text", "other string", false},
		{"case insensitive", "TEXT", "Some Text here", true},
		{"unicode case", "ÉCOLE", "une école", true},
		{"cyrillic case", "привет", "ПРИВЕТ, мир", true},
		{"layout whitespace", "Hello, world", "<h1>Hello,\n    world</h1>", true},
		{"expected normalized", "Hello,\n\n world", "Hello, world", true},
		{"empty expected", "", "anything", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPage(tt.expected, "").Matches(tt.content)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPage_EvaluatePasses(t *testing.T) {
	assert.NoError(t, NewPage("text", "uri").Evaluate("long text string"))
}

func TestPage_EvaluateFails(t *testing.T) {
	err := NewPage("text", "uri").Evaluate("other string")
	require.Error(t, err)

	var assertionErr *AssertionError
	require.True(t, errors.As(err, &assertionErr))
	assert.Equal(t, "Failed asserting that on page uri\n--> other string\n--> contains \"text\".", err.Error())
}

func TestPage_FailureDescriptionWithoutURI(t *testing.T) {
	got := NewPage("text", "").FailureDescription("other")
	assert.Equal(t, "\n--> other\n--> contains \"text\"", got)
}

func TestPage_FailureDescriptionTruncates(t *testing.T) {
	content := strings.Repeat("é", MaxShownRunes+1)

	p := NewPage("missing", "/page")
	got := p.FailureDescription(content)
	assert.Contains(t, got, "--> "+strings.Repeat("é", MaxShownRunes)+"\n")
	assert.NotContains(t, got, "Content too long")

	p.OutputDir = "_output"
	got = p.FailureDescription(content)
	assert.Contains(t, got, "[Content too long to display. See complete response in '_output' directory]")
}

func TestPage_String(t *testing.T) {
	assert.Equal(t, `contains "a b"`, NewPage(" a\n b ", "").String())
}

type recordingT struct {
	messages []string
}

func (r *recordingT) Errorf(format string, args ...interface{}) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func TestAssertPageContains(t *testing.T) {
	AssertPageContains(t, "Welcome to the\n  Dashboard", "welcome to the dashboard", "/home")

	rt := &recordingT{}
	ok := AssertPageContains(rt, "other string", "text", "uri")
	assert.False(t, ok)
	require.Len(t, rt.messages, 1)
	assert.Contains(t, rt.messages[0], "on page uri")
	assert.Contains(t, rt.messages[0], `contains "text"`)
}
