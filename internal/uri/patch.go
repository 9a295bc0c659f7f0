package uri

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// ApplyMergePatch edits s with an RFC 7396 JSON merge patch applied to the
// JSON form of its components. A null member removes the component:
//
//	ApplyMergePatch("http://example.com/a?x=1", []byte(`{"query":null,"path":"/b"}`))
//	// "http://example.com/b"
func ApplyMergePatch(s string, patch []byte) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	doc, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	merged, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return "", fmt.Errorf("merge patch: %w", err)
	}

	out, err := DecodeComponents(merged)
	if err != nil {
		return "", err
	}
	return Format(out), nil
}

// DecodeComponents reads the JSON form of Components, as written by
// encoding/json, and validates the port.
func DecodeComponents(data []byte) (Components, error) {
	var c Components
	if err := json.Unmarshal(data, &c); err != nil {
		return Components{}, fmt.Errorf("%w: %v", ErrInvalidURI, err)
	}
	if c.Port != nil && (*c.Port < 0 || *c.Port > MaxPort) {
		return Components{}, fmt.Errorf("%w: port %d out of range", ErrInvalidURI, *c.Port)
	}
	return c, nil
}
