package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Components
	}{
		{
			name:  "empty string",
			input: "",
			want:  Components{Path: ptr("")},
		},
		{
			name:  "all components",
			input: "https://user:pw@example.com:8080/a/b?x=1&y=2#frag",
			want: Components{
				Scheme:   ptr("https"),
				Host:     ptr("example.com"),
				Port:     ptr(8080),
				User:     ptr("user"),
				Password: ptr("pw"),
				Path:     ptr("/a/b"),
				Query:    ptr("x=1&y=2"),
				Fragment: ptr("frag"),
			},
		},
		{
			name:  "host only",
			input: "http://example.com",
			want:  Components{Scheme: ptr("http"), Host: ptr("example.com")},
		},
		{
			name:  "user without password",
			input: "ftp://anonymous@files.example.com/",
			want: Components{
				Scheme: ptr("ftp"),
				Host:   ptr("files.example.com"),
				User:   ptr("anonymous"),
				Path:   ptr("/"),
			},
		},
		{
			name:  "ip literal keeps brackets",
			input: "http://[::1]:8080/x",
			want: Components{
				Scheme: ptr("http"),
				Host:   ptr("[::1]"),
				Port:   ptr(8080),
				Path:   ptr("/x"),
			},
		},
		{
			name:  "empty port",
			input: "http://example.com:/x",
			want:  Components{Scheme: ptr("http"), Host: ptr("example.com"), Path: ptr("/x")},
		},
		{
			name:  "scheme relative",
			input: "//cdn.example.com",
			want:  Components{Host: ptr("cdn.example.com")},
		},
		{
			name:  "relative path",
			input: "a/b",
			want:  Components{Path: ptr("a/b")},
		},
		{
			name:  "file uri",
			input: "file:///etc/hosts",
			want:  Components{Scheme: ptr("file"), Path: ptr("/etc/hosts")},
		},
		{
			name:  "opaque",
			input: "mailto:joe@example.com",
			want:  Components{Scheme: ptr("mailto"), Path: ptr("joe@example.com")},
		},
		{
			name:  "query only",
			input: "?y=2",
			want:  Components{Query: ptr("y=2")},
		},
		{
			name:  "empty query",
			input: "?",
			want:  Components{Query: ptr("")},
		},
		{
			name:  "fragment only",
			input: "#frag",
			want:  Components{Fragment: ptr("frag")},
		},
		{
			name:  "path and fragment kept as written",
			input: "http://example.com/a b/café|x#été",
			want: Components{
				Scheme:   ptr("http"),
				Host:     ptr("example.com"),
				Path:     ptr("/a b/café|x"),
				Fragment: ptr("été"),
			},
		},
		{
			name:  "escapes kept as written",
			input: "/a%2Fb#c%20d",
			want:  Components{Path: ptr("/a%2Fb"), Fragment: ptr("c%20d")},
		},
		{
			name:  "host and port without scheme reads as scheme",
			input: "localhost:3000",
			want:  Components{Scheme: ptr("localhost"), Path: ptr("3000")},
		},
		{
			name:  "triple slash without scheme is a path",
			input: "///a",
			want:  Components{Path: ptr("///a")},
		},
		{
			name:  "empty fragment",
			input: "/a#",
			want:  Components{Path: ptr("/a"), Fragment: ptr("")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"http://example.com:99999/",
		"http://example.com:abc/",
		"http://[::1/",
		"%zz",
		"http://example.com/\x7f",
		"1a:b",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.ErrorIs(t, err, ErrInvalidURI)
		})
	}
}

func TestFormat_RoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"https://example.com:8080/a/b?x=1#frag",
		"http://example.com",
		"http://example.com/",
		"http://[::1]:8080/x",
		"/a/b?c",
		"a/b",
		"//cdn.example.com/x",
		"?q",
		"#f",
		"file:///etc/hosts",
		"mailto:joe@example.com",
		"http://example.com/café/a b|c?x=ü#été",
		"http://example.com/a|b",
		"/a|b#f|g",
		"ü",
		"/a%2Fb?x#%41",
		"localhost:3000",
	}

	for _, input := range inputs {
		c, err := Parse(input)
		if assert.NoError(t, err, input) {
			assert.Equal(t, input, Format(c), input)
			assert.Equal(t, input, c.String(), input)
		}
	}
}

func TestSplitHostPort(t *testing.T) {
	tests := []struct {
		in   string
		host string
		port string
	}{
		{"", "", ""},
		{"example.com", "example.com", ""},
		{"example.com:80", "example.com", "80"},
		{"example.com:", "example.com", ""},
		{"[::1]", "[::1]", ""},
		{"[::1]:443", "[::1]", "443"},
	}

	for _, tt := range tests {
		host, port := splitHostPort(tt.in)
		if host != tt.host || port != tt.port {
			t.Errorf("splitHostPort(%q) = (%q, %q), want (%q, %q)", tt.in, host, port, tt.host, tt.port)
		}
	}
}
