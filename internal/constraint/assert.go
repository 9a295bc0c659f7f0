package constraint

import (
	"github.com/stretchr/testify/assert"
)

// AssertPageContains fails t unless content contains expected once both are
// normalized. uri names the page in the failure message.
func AssertPageContains(t assert.TestingT, content, expected, uri string, msgAndArgs ...interface{}) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if err := NewPage(expected, uri).Evaluate(content); err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}
	return true
}
