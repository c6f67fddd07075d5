// Package routes declares GET routes, collects them in a registry, and
// resolves the ordered set of declarations matching a request path.
//
// Resolution order is fixed: routes marked First come before unflagged
// routes, which come before routes marked Last. Within each band routes keep
// their registration order, so the result is deterministic for a given
// registration sequence.
package routes

import (
	"cmp"
	"slices"

	"github.com/JaimeStill/waypoint/pkg/pattern"
)

type entry struct {
	route Route
	seq   int
}

// Match is a declaration whose pattern matched a request path, along with
// the bindings extracted by the matcher.
type Match struct {
	Route
	Params pattern.Params
}

// Registry collects route declarations during startup. It is not safe for
// concurrent use; publish a Table for request handling.
type Registry struct {
	matcher pattern.Matcher
	entries []entry
	next    int
}

// NewRegistry creates an empty Registry. A nil matcher selects
// pattern.NewSegments.
func NewRegistry(matcher pattern.Matcher) *Registry {
	if matcher == nil {
		matcher = pattern.NewSegments()
	}
	return &Registry{matcher: matcher}
}

// Register validates route and appends it in registration order. The error
// satisfies errors.Is(err, ErrInvalidDeclaration) when the declaration is
// rejected.
func (r *Registry) Register(route Route) error {
	if err := route.Validate(); err != nil {
		return err
	}

	if c, ok := r.matcher.(pattern.Compiler); ok {
		if err := c.Compile(route.Pattern); err != nil {
			return &DeclarationError{
				Method:  route.Method,
				Pattern: route.Pattern,
				Name:    route.Name,
				Reason:  "pattern rejected by matcher",
				Err:     err,
			}
		}
	}

	r.entries = append(r.entries, entry{route: route, seq: r.next})
	r.next++
	return nil
}

// RegisterGroup registers every route in group in flattened order. It stops
// at the first invalid declaration; routes registered before it remain.
func (r *Registry) RegisterGroup(group Group) error {
	for _, route := range group.Flatten() {
		if err := r.Register(route); err != nil {
			return err
		}
	}
	return nil
}

// Unregister removes every declaration owned by the named action and returns
// how many were removed. The remaining declarations keep their order.
// Callers that keep a long-lived Registry use it to drop an action and seal
// a new Table for Dispatcher.Swap; Discover rebuilds from scratch instead.
func (r *Registry) Unregister(name string) int {
	before := len(r.entries)
	r.entries = slices.DeleteFunc(r.entries, func(e entry) bool {
		return e.route.Name == name
	})
	return before - len(r.entries)
}

// Len returns the number of registered declarations.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Resolve returns the declarations matching path in resolution order.
func (r *Registry) Resolve(path string) []Match {
	return resolve(r.matcher, r.ordered(), path)
}

// Table seals the current declarations into an immutable snapshot.
func (r *Registry) Table() *Table {
	return newTable(r.matcher, r.ordered())
}

func (r *Registry) ordered() []entry {
	ordered := slices.Clone(r.entries)
	slices.SortStableFunc(ordered, compareEntries)
	return ordered
}

func compareEntries(a, b entry) int {
	return cmp.Or(
		cmp.Compare(a.route.rank(), b.route.rank()),
		cmp.Compare(a.seq, b.seq),
	)
}

func resolve(matcher pattern.Matcher, ordered []entry, path string) []Match {
	var matches []Match
	for _, e := range ordered {
		params, ok := matcher.Match(e.route.Pattern, path)
		if !ok {
			continue
		}
		matches = append(matches, Match{Route: e.route, Params: params})
	}
	return matches
}
