package routes

// Group organizes routes under a common prefix.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Flatten returns the group's routes with prefixes applied, in registration
// order: a group's own routes first, then each child depth-first.
func (g Group) Flatten() []Route {
	var out []Route
	flatten(&out, "", g)
	return out
}

func flatten(out *[]Route, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		route.Pattern = fullPrefix + route.Pattern
		*out = append(*out, route)
	}
	for _, child := range group.Children {
		flatten(out, fullPrefix, child)
	}
}
