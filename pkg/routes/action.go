package routes

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// GET marks an action as reachable by an HTTP GET request. Declare it as a
// field of an action struct and tag it with the pattern and optional
// ordering hints:
//
//	type ShowArticle struct {
//		routes.GET `route:"/articles/{id}"`
//	}
//
//	type NewArticle struct {
//		routes.GET `route:"/articles/new,first"`
//	}
//
// The action must implement http.Handler. A struct may carry several GET
// fields to answer more than one pattern. The optional name tag overrides
// the action name recorded on the route.
type GET struct{}

var getType = reflect.TypeFor[GET]()

// Introspect returns the routes declared on action by its GET fields, in
// field order. An action without GET fields yields no routes.
func Introspect(action any) ([]Route, error) {
	if action == nil {
		return nil, &DeclarationError{Method: http.MethodGet, Reason: "action is nil"}
	}

	t := reflect.TypeOf(action)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, nil
	}

	name := t.String()
	var out []Route

	for i := range t.NumField() {
		field := t.Field(i)
		if field.Type != getType {
			continue
		}

		handler, ok := action.(http.Handler)
		if !ok {
			return nil, &DeclarationError{
				Method: http.MethodGet,
				Name:   name,
				Reason: "action does not implement http.Handler",
			}
		}

		route, err := parseTag(field, name)
		if err != nil {
			return nil, err
		}
		route.Handler = handler.ServeHTTP

		if err := route.Validate(); err != nil {
			return nil, err
		}
		out = append(out, route)
	}

	return out, nil
}

func parseTag(field reflect.StructField, actionName string) (Route, error) {
	route := Route{
		Method: http.MethodGet,
		Name:   actionName,
	}
	if n := field.Tag.Get("name"); n != "" {
		route.Name = n
	}

	tag, ok := field.Tag.Lookup("route")
	if !ok {
		return Route{}, route.invalid(fmt.Sprintf("field %s has no route tag", field.Name))
	}

	pattern, opts, _ := strings.Cut(tag, ",")
	route.Pattern = pattern

	if opts == "" {
		return route, nil
	}

	for opt := range strings.SplitSeq(opts, ",") {
		switch strings.TrimSpace(opt) {
		case "first":
			route.First = true
		case "last":
			route.Last = true
		default:
			return Route{}, route.invalid(fmt.Sprintf("unknown route option %q", opt))
		}
	}

	return route, nil
}
