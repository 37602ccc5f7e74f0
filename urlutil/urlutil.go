// Package urlutil wraps net/url with the component-accessor and
// path-append conveniences original_source/rs-core/url.hpp's Url class
// provides on top of plain URL parsing: scheme/user/password/host/port/
// path/query/fragment presence checks, query building from ordered
// pairs, and a fluent append-path helper.
package urlutil

import (
	"net/url"
	"strconv"
	"strings"
)

// URL wraps *url.URL with the has-component / append-path helpers the
// original's Url class provides beyond the stdlib type.
type URL struct {
	*url.URL
}

// Parse parses s, matching url.hpp's Url::try_parse / constructor.
func Parse(s string) (URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return URL{}, err
	}
	return URL{u}, nil
}

func (u URL) HasScheme() bool   { return u.Scheme != "" }
func (u URL) HasHost() bool     { return u.Host != "" }
func (u URL) HasPath() bool     { return u.Path != "" }
func (u URL) HasQuery() bool    { return u.RawQuery != "" }
func (u URL) HasFragment() bool { return u.Fragment != "" }

func (u URL) HasUser() bool {
	return u.URL.User != nil && u.URL.User.Username() != ""
}

func (u URL) HasPassword() bool {
	if u.URL.User == nil {
		return false
	}
	_, ok := u.URL.User.Password()
	return ok
}

// Port returns the numeric port, or 0 if absent or unparsable, matching
// url.hpp's Url::port.
func (u URL) Port() uint16 {
	p := u.URL.Port()
	if p == "" {
		return 0
	}
	n, err := strconv.Atoi(p)
	if err != nil || n < 0 || n > 65535 {
		return 0
	}
	return uint16(n)
}

// AppendPath returns a copy of u with seg appended to the path with a
// single separating slash, matching url.hpp's Url::append_path / the
// operator/= fluent join.
func (u URL) AppendPath(seg string) URL {
	cp := *u.URL
	cp.Path = strings.TrimSuffix(cp.Path, "/") + "/" + strings.TrimPrefix(seg, "/")
	return URL{&cp}
}

// IsRoot reports whether u has no path, query, or fragment beyond the
// authority, matching url.hpp's Url::is_root.
func (u URL) IsRoot() bool {
	return !u.HasPath() && !u.HasQuery() && !u.HasFragment()
}

// MakeQuery builds a query string from ordered key/value pairs,
// preserving pair order (unlike url.Values, which is a map), matching
// url.hpp's Url::make_query. loneKeys, when true, omits the '=' for
// pairs with an empty value (the original's lone_keys flag).
func MakeQuery(pairs [][2]string, loneKeys bool) string {
	var b strings.Builder
	for i, kv := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv[0]))
		if !loneKeys || kv[1] != "" {
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(kv[1]))
		}
	}
	return b.String()
}

// ParseQuery parses a query string into ordered key/value pairs,
// preserving the original order and allowing repeated keys, matching
// url.hpp's Url::parse_query (which returns a vector of pairs, not a
// map, for exactly this reason).
func ParseQuery(query string) [][2]string {
	if query == "" {
		return nil
	}
	var out [][2]string
	for _, part := range strings.Split(query, "&") {
		if part == "" {
			continue
		}
		k, v, _ := strings.Cut(part, "=")
		dk, err := url.QueryUnescape(k)
		if err != nil {
			dk = k
		}
		dv, err := url.QueryUnescape(v)
		if err != nil {
			dv = v
		}
		out = append(out, [2]string{dk, dv})
	}
	return out
}
