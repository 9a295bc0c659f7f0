package uri

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyMergePatch(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		patch string
		want  string
	}{
		{"drop query", "http://example.com/a?x=1", `{"query":null}`, "http://example.com/a"},
		{"replace path", "http://example.com/a?x=1", `{"query":null,"path":"/b"}`, "http://example.com/b"},
		{"add port", "http://example.com/a", `{"port":8080}`, "http://example.com:8080/a"},
		{"switch authority", "http://example.com/a?x=1", `{"scheme":"https","host":"other.org"}`, "https://other.org/a?x=1"},
		{"add fragment", "/a", `{"fragment":"top"}`, "/a#top"},
		{"empty patch", "http://example.com/a#f", `{}`, "http://example.com/a#f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyMergePatch(tt.url, []byte(tt.patch))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyMergePatch_Errors(t *testing.T) {
	_, err := ApplyMergePatch("%zz", []byte(`{}`))
	assert.ErrorIs(t, err, ErrInvalidURI)

	_, err = ApplyMergePatch("http://example.com", []byte(`{"port":70000}`))
	assert.ErrorIs(t, err, ErrInvalidURI)

	_, err = ApplyMergePatch("http://example.com", []byte(`{"port":"eighty"}`))
	assert.ErrorIs(t, err, ErrInvalidURI)

	_, err = ApplyMergePatch("http://example.com", []byte(`{`))
	assert.Error(t, err)
}

func TestDecodeComponents(t *testing.T) {
	c, err := DecodeComponents([]byte(`{"scheme":"https","host":"example.com","port":443,"path":"/a","query":""}`))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com:443/a", Format(c))
	assert.Equal(t, ptr(""), c.Query)

	_, err = DecodeComponents([]byte(`{"port":-1}`))
	assert.ErrorIs(t, err, ErrInvalidURI)
}
