package uri

import (
	"fmt"
	"strings"
)

// Merge resolves ref against base and returns the resulting URI.
//
// A reference that carries both a scheme and a host is returned unchanged.
// Otherwise the components of ref are layered onto base from the most
// general to the most specific: host, path, query, fragment. Each
// component taken from ref clears everything more specific than itself on
// the base, so "?y=2" keeps the base path but drops the base fragment.
// A scheme-relative ref replaces only the host; the base port and userinfo
// stay.
//
// Relative paths replace the last segment of the base path, or are appended
// when the base path ends with a slash. "." and ".." segments are kept as is.
func Merge(base, ref string) (string, error) {
	b, err := Parse(base)
	if err != nil {
		return "", err
	}

	r, err := Parse(ref)
	if err != nil {
		// net/url refuses relative references with a colon in their first
		// segment ("1a:b"), the same input reads fine once prefixed by base.
		r, err = Parse(base + ref)
		if err != nil {
			return "", fmt.Errorf("%w %q", ErrInvalidURI, ref)
		}
	}

	if r.Host != nil && r.Scheme != nil {
		return ref, nil
	}

	out := b
	if r.Host != nil {
		out.Host = r.Host
		out.Path = nil
		out.Query = nil
		out.Fragment = nil
	}
	if r.Path != nil {
		if *r.Path != "" {
			out.Path = ptr(resolvePath(deref(out.Path), *r.Path))
		}
		out.Query = nil
		out.Fragment = nil
	}
	if r.Query != nil {
		out.Query = r.Query
		out.Fragment = nil
	}
	if r.Fragment != nil {
		out.Fragment = r.Fragment
	}
	return Format(out), nil
}

func resolvePath(base, ref string) string {
	switch {
	case ref[0] == '/':
		return ref
	case base == "":
		return "/" + ref
	case strings.HasSuffix(base, "/"):
		return base + ref
	}
	return dir(base) + "/" + ref
}

// dir returns everything before the last slash of p, without trailing
// slashes. A path with no slash lives in ".".
func dir(p string) string {
	i := strings.LastIndexByte(p, '/')
	if i < 0 {
		return "."
	}
	return strings.TrimRight(p[:i], `/\`)
}
