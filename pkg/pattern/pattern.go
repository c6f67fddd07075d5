// Package pattern matches request paths against route patterns.
//
// The route registry treats patterns as opaque strings and delegates every
// match decision to a Matcher. Segments is the default Matcher and supports
// a small grammar:
//
//	/users            literal segments compare exactly
//	/users/{id}       {name} binds one non-empty segment
//	/files/{path...}  {name...} binds the remaining path, possibly empty
//
// A {name...} wildcard is only valid as the final segment.
package pattern

import "errors"

// ErrInvalidPattern is returned when a pattern cannot be compiled.
var ErrInvalidPattern = errors.New("invalid pattern")

// Matcher reports whether a pattern matches a concrete request path and
// returns the bindings extracted from placeholder segments.
type Matcher interface {
	Match(pattern, path string) (Params, bool)
}

// Compiler is implemented by matchers that can validate a pattern ahead of
// time. Registries call it at registration so a malformed pattern fails
// startup instead of silently never matching.
type Compiler interface {
	Compile(pattern string) error
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(pattern, path string) (Params, bool)

// Match calls f(pattern, path).
func (f MatcherFunc) Match(pattern, path string) (Params, bool) {
	return f(pattern, path)
}

// Exact matches when the pattern and path are identical strings.
var Exact = MatcherFunc(func(pattern, path string) (Params, bool) {
	return nil, pattern == path
})

// Param is a single placeholder binding.
type Param struct {
	Name  string
	Value string
}

// Params holds placeholder bindings in pattern order.
type Params []Param

// Get returns the value bound to name, or "" if name is not bound.
func (p Params) Get(name string) string {
	for _, param := range p {
		if param.Name == name {
			return param.Value
		}
	}
	return ""
}

// Lookup returns the value bound to name and whether it was bound.
func (p Params) Lookup(name string) (string, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return "", false
}
