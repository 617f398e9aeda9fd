package turnstile

import (
	"fmt"
	"strings"
)

// segment is one component of a parsed route template. Literal segments
// are stored lower-cased so every literal comparison is case-insensitive
// by construction; key segments keep their declared name verbatim.
type segment struct {
	name string
	key  bool
}

// Route is a parsed route template: an ordered sequence of literal and
// key segments. Routes are built once at registration time and are
// immutable afterward, so concurrent matching needs no locking.
type Route struct {
	template string
	segments []segment
	keyCount int
}

// ParseRoute parses a route template such as "/orders/{id}/items".
// A segment wrapped in braces becomes a named key matching any single
// path component; everything else is a literal matched
// case-insensitively. A trailing slash is ignored and the root template
// "/" parses to zero segments.
func ParseRoute(template string) *Route {
	parts := splitPath(template)
	segments := make([]segment, 0, len(parts))
	keyCount := 0
	for _, part := range parts {
		if len(part) > 2 && part[0] == '{' && part[len(part)-1] == '}' {
			segments = append(segments, segment{name: part[1 : len(part)-1], key: true})
			keyCount++
			continue
		}
		segments = append(segments, segment{name: strings.ToLower(part)})
	}
	return &Route{template: template, segments: segments, keyCount: keyCount}
}

// Template returns the original route string.
func (r *Route) Template() string { return r.template }

// KeyCount returns the number of key segments. Routes with zero keys are
// dispatched through the exact-path map instead of the positional scan.
func (r *Route) KeyCount() int { return r.keyCount }

// Keys returns the declared key names in template order.
func (r *Route) Keys() []string {
	if r.keyCount == 0 {
		return nil
	}
	keys := make([]string, 0, r.keyCount)
	for _, s := range r.segments {
		if s.key {
			keys = append(keys, s.name)
		}
	}
	return keys
}

// HasKey reports whether the template declares the named key.
func (r *Route) HasKey(name string) bool {
	for _, s := range r.segments {
		if s.key && s.name == name {
			return true
		}
	}
	return false
}

// Matches reports whether the request path is owned by this route.
func (r *Route) Matches(path string) bool {
	return r.matchSegments(splitPath(path))
}

// Value extracts the path component bound to the named key. It panics if
// the route does not declare the key (a programming error that
// registration-time validation exists to prevent).
func (r *Route) Value(path, key string) string {
	return r.valueAt(splitPath(path), key)
}

func (r *Route) matchSegments(path []string) bool {
	if len(path) != len(r.segments) {
		return false
	}
	for i, s := range r.segments {
		if s.key {
			continue
		}
		if !strings.EqualFold(path[i], s.name) {
			return false
		}
	}
	return true
}

func (r *Route) valueAt(path []string, key string) string {
	for i, s := range r.segments {
		if s.key && s.name == key {
			return path[i]
		}
	}
	panic(fmt.Sprintf("turnstile: route %q does not have key %q", r.template, key))
}

// canonicalKey returns the registration identity of the template:
// lower-cased literals joined by slashes, with key positions rendered
// as "{}". Templates that differ only by letter case, a trailing
// slash, or key names share one canonical key, so the duplicate guard
// catches every equivalent registration. For zero-key routes it is
// also the exact-dispatch dictionary key, aligned with pathKey.
func (r *Route) canonicalKey() string {
	if len(r.segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range r.segments {
		b.WriteByte('/')
		if s.key {
			b.WriteString("{}")
			continue
		}
		b.WriteString(s.name)
	}
	return b.String()
}

// splitPath splits a slash-delimited path into its segments. The leading
// slash and a single trailing slash contribute no segments, so "/" and
// "" both split to nil. Doubled slashes produce empty segments, which
// never match a literal but do bind to a key.
func splitPath(p string) []string {
	p = strings.TrimPrefix(p, "/")
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

// pathKey returns the lower-cased canonical form of a request path for
// exact-map lookup, aligned with Route.canonicalKey.
func pathKey(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(strings.ToLower(s))
	}
	return b.String()
}
