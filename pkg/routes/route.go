package routes

import (
	"net/http"
)

// Route declares that an action is reachable by an HTTP GET request whose
// path matches Pattern. First and Last are ordering hints applied when more
// than one declaration matches the same path.
type Route struct {
	Method  string
	Pattern string
	First   bool
	Last    bool
	Name    string
	Handler http.HandlerFunc
}

// Option configures a Route built by Get.
type Option func(*Route)

// First prefers the route over other matching routes.
func First() Option {
	return func(r *Route) { r.First = true }
}

// Last uses the route only when no other matching route applies.
func Last() Option {
	return func(r *Route) { r.Last = true }
}

// Named records the owning action's name on the route.
func Named(name string) Option {
	return func(r *Route) { r.Name = name }
}

// Get builds and validates a GET route.
func Get(pattern string, handler http.HandlerFunc, opts ...Option) (Route, error) {
	route := Route{
		Method:  http.MethodGet,
		Pattern: pattern,
		Handler: handler,
	}
	for _, opt := range opts {
		opt(&route)
	}
	if err := route.Validate(); err != nil {
		return Route{}, err
	}
	return route, nil
}

// Validate checks the structural invariants of a declaration.
func (r Route) Validate() error {
	if r.Method != http.MethodGet {
		return r.invalid("method must be GET")
	}
	if r.Pattern == "" {
		return r.invalid("pattern is empty")
	}
	if r.First && r.Last {
		return r.invalid("first and last are mutually exclusive")
	}
	return nil
}

// rank places first routes before unflagged routes before last routes.
func (r Route) rank() int {
	switch {
	case r.First:
		return 0
	case r.Last:
		return 2
	default:
		return 1
	}
}

func (r Route) invalid(reason string) error {
	return &DeclarationError{
		Method:  r.Method,
		Pattern: r.Pattern,
		Name:    r.Name,
		Reason:  reason,
	}
}
