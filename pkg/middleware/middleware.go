// Package middleware provides an ordered HTTP middleware stack and the
// request-level middleware used in front of the route dispatcher.
package middleware

import "net/http"

// Func wraps an http.Handler with additional behavior.
type Func func(http.Handler) http.Handler

// System manages an ordered stack of HTTP middleware.
type System interface {
	Use(mw ...Func)
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	mws []Func
}

// New creates an empty middleware System.
func New() System {
	return &stack{}
}

func (s *stack) Use(mw ...Func) {
	s.mws = append(s.mws, mw...)
}

// Apply wraps handler so the first middleware registered runs outermost.
func (s *stack) Apply(handler http.Handler) http.Handler {
	for i := len(s.mws) - 1; i >= 0; i-- {
		handler = s.mws[i](handler)
	}
	return handler
}
