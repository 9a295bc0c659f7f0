package uri

import (
	"fmt"
	"strconv"
	"strings"
)

// Format rebuilds a URI string from its components. It is a literal
// concatenation: nothing is encoded, case-folded or cleaned up, and the
// userinfo components are never written.
//
// "file" URIs always get the "//" authority marker, even without a host.
func Format(c Components) string {
	scheme := deref(c.Scheme)
	host := deref(c.Host)
	path := deref(c.Path)

	var sb strings.Builder
	if scheme != "" {
		sb.WriteString(scheme)
		sb.WriteByte(':')
	}

	if host != "" || scheme == "file" {
		sb.WriteString("//")
		sb.WriteString(host)
		if c.Port != nil {
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(*c.Port))
		}
	}

	// A relative path right after an authority would merge into the host.
	if host != "" && path != "" && path[0] != '/' {
		path = "/" + path
	}
	sb.WriteString(path)

	if q := deref(c.Query); q != "" {
		sb.WriteByte('?')
		sb.WriteString(q)
	}
	if f := deref(c.Fragment); f != "" {
		sb.WriteByte('#')
		sb.WriteString(f)
	}
	return sb.String()
}

// RetrieveURI returns the "/path?query#fragment" part of s.
func RetrieveURI(s string) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(Components{
		Path:     c.Path,
		Query:    c.Query,
		Fragment: c.Fragment,
	}), nil
}

// RetrieveHost returns "scheme://host[:port]" for s.
func RetrieveHost(s string) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	if c.Scheme == nil || c.Host == nil {
		return "", fmt.Errorf("%w: %q", ErrMissingAuthority, s)
	}

	host := *c.Scheme + "://" + *c.Host
	if c.Port != nil {
		host += ":" + strconv.Itoa(*c.Port)
	}
	return host, nil
}

// AppendPath drops the query and fragment of s and appends p with exactly
// one slash in between. An empty p, or one starting with '#', is appended
// as is.
func AppendPath(s, p string) (string, error) {
	c, err := Parse(s)
	if err != nil {
		return "", err
	}
	c.Query = nil
	c.Fragment = nil
	cut := Format(c)

	if p == "" || p[0] == '#' {
		return cut + p, nil
	}
	return strings.TrimRight(cut, "/") + "/" + strings.TrimLeft(p, "/"), nil
}
