// Package uri splits URIs into components, rebuilds them, and resolves
// references against a base URI.
//
// Resolution follows the reference-resolution order of RFC 3986 section 5
// (authority, path, query, fragment) without dot-segment removal or any
// percent-encoding normalization.
package uri

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

var (
	// ErrInvalidURI is returned when a string cannot be split into URI components.
	ErrInvalidURI = errors.New("invalid URI")
	// ErrMissingAuthority is returned when a URI has no scheme or no host.
	ErrMissingAuthority = errors.New("host and scheme not set")
)

// MaxPort is the largest port number Parse accepts.
const MaxPort = 65535

// Components is the parsed form of a URI. A nil field means the component
// was not present in the input, which is different from present but empty
// for Query and Fragment ("a?" has an empty query, "a" has none).
type Components struct {
	Scheme   *string `json:"scheme,omitempty"`
	Host     *string `json:"host,omitempty"`
	Port     *int    `json:"port,omitempty"`
	User     *string `json:"user,omitempty"`
	Password *string `json:"pass,omitempty"`
	Path     *string `json:"path,omitempty"`
	Query    *string `json:"query,omitempty"`
	Fragment *string `json:"fragment,omitempty"`
}

// String rebuilds the URI, see Format.
func (c Components) String() string { return Format(c) }

// Parse splits s into its components. The empty string is valid and yields
// an empty path with every other component absent.
//
// Opaque URIs such as "mailto:a@example.com" report the opaque part as the
// path. IP literal hosts keep their brackets.
func Parse(s string) (Components, error) {
	u, err := url.Parse(s)
	if err != nil {
		return Components{}, fmt.Errorf("%w %q: %v", ErrInvalidURI, s, err)
	}

	var c Components
	if u.Scheme != "" {
		c.Scheme = ptr(u.Scheme)
	}
	if u.User != nil {
		c.User = ptr(u.User.Username())
		if pass, ok := u.User.Password(); ok {
			c.Password = ptr(pass)
		}
	}

	host, port := splitHostPort(u.Host)
	if host != "" {
		c.Host = ptr(host)
	}
	if port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n > MaxPort {
			return Components{}, fmt.Errorf("%w %q: port %q out of range", ErrInvalidURI, s, port)
		}
		c.Port = ptr(n)
	}

	path, fragment := rawPathAndFragment(s, u)
	if path != "" || s == "" {
		c.Path = ptr(path)
	}

	if u.ForceQuery || u.RawQuery != "" {
		c.Query = ptr(u.RawQuery)
	}
	c.Fragment = fragment
	return c, nil
}

// rawPathAndFragment cuts the path and fragment out of s exactly as written.
// net/url re-encodes them on output, which would change bytes such as
// spaces, '|' or non-ASCII letters.
func rawPathAndFragment(s string, u *url.URL) (string, *string) {
	var fragment *string
	rest, frag, found := strings.Cut(s, "#")
	if found {
		fragment = ptr(frag)
	}
	rest, _, _ = strings.Cut(rest, "?")

	if u.Scheme != "" {
		rest = rest[len(u.Scheme)+1:]
	}
	// Same authority rule as net/url: "//" starts one, except "///" without
	// a scheme, which is a path.
	if strings.HasPrefix(rest, "//") && (u.Scheme != "" || !strings.HasPrefix(rest, "///")) {
		rest = rest[2:]
		i := strings.IndexByte(rest, '/')
		if i < 0 {
			return "", fragment
		}
		rest = rest[i:]
	}
	return rest, fragment
}

// splitHostPort separates "host:port" without stripping IPv6 brackets, so
// the host can be written back verbatim.
func splitHostPort(hostport string) (string, string) {
	i := strings.LastIndexByte(hostport, ':')
	if i < 0 || i < strings.LastIndexByte(hostport, ']') {
		return hostport, ""
	}
	return hostport[:i], hostport[i+1:]
}

func ptr[T any](v T) *T { return &v }

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
