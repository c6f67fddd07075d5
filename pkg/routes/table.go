package routes

import (
	"github.com/google/uuid"

	"github.com/JaimeStill/waypoint/pkg/pattern"
)

// Table is an immutable snapshot of a Registry. Entries are stored in
// resolution order, so Resolve only filters. A Table is safe for concurrent
// use.
type Table struct {
	id      uuid.UUID
	matcher pattern.Matcher
	entries []entry
}

func newTable(matcher pattern.Matcher, ordered []entry) *Table {
	return &Table{
		id:      uuid.New(),
		matcher: matcher,
		entries: ordered,
	}
}

// ID identifies the snapshot. Every call to Registry.Table yields a new ID.
func (t *Table) ID() uuid.UUID {
	return t.id
}

// Len returns the number of declarations in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Resolve returns the declarations matching path in resolution order. An
// empty result means no route was found.
func (t *Table) Resolve(path string) []Match {
	return resolve(t.matcher, t.entries, path)
}

// Routes returns every declaration in resolution order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.route
	}
	return out
}
