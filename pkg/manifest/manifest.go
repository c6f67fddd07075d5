// Package manifest loads GET route declarations from a TOML file and binds
// them to handlers registered in a Catalog.
//
//	[[get]]
//	action  = "articles.show"
//	pattern = "/articles/{id}"
//
//	[[get]]
//	action  = "articles.new"
//	pattern = "/articles/new"
//	first   = true
package manifest

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/waypoint/pkg/routes"
)

// Entry is a single declaration in a manifest file.
type Entry struct {
	Action  string `toml:"action"`
	Pattern string `toml:"pattern"`
	First   bool   `toml:"first"`
	Last    bool   `toml:"last"`
}

// Manifest is the decoded form of a manifest file.
type Manifest struct {
	Get []Entry `toml:"get"`
}

// Catalog maps action names to the handlers that serve them.
type Catalog map[string]http.Handler

// Load reads and decodes the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return Parse(data)
}

// Parse decodes manifest data. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Routes binds every entry to its handler in catalog, in file order.
func (m *Manifest) Routes(catalog Catalog) ([]routes.Route, error) {
	out := make([]routes.Route, 0, len(m.Get))
	for _, e := range m.Get {
		route := routes.Route{
			Method:  http.MethodGet,
			Pattern: e.Pattern,
			First:   e.First,
			Last:    e.Last,
			Name:    e.Action,
		}

		handler, ok := catalog[e.Action]
		if !ok {
			return nil, &routes.DeclarationError{
				Method:  route.Method,
				Pattern: route.Pattern,
				Name:    route.Name,
				Reason:  "action not found in catalog",
			}
		}
		if isNilHandler(handler) {
			return nil, &routes.DeclarationError{
				Method:  route.Method,
				Pattern: route.Pattern,
				Name:    route.Name,
				Reason:  "catalog handler is nil",
			}
		}
		route.Handler = handler.ServeHTTP

		if err := route.Validate(); err != nil {
			return nil, err
		}
		out = append(out, route)
	}
	return out, nil
}

func isNilHandler(h http.Handler) bool {
	if h == nil {
		return true
	}
	f, ok := h.(http.HandlerFunc)
	return ok && f == nil
}

// Source returns a routes.Source that loads the manifest at path on every
// call, so a reload picks up file changes. An empty path yields no routes.
func Source(path string, catalog Catalog) routes.Source {
	return routes.SourceFunc(func(ctx context.Context) ([]routes.Route, error) {
		if path == "" {
			return nil, nil
		}

		m, err := Load(path)
		if err != nil {
			return nil, err
		}

		declared, err := m.Routes(catalog)
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", path, err)
		}
		return declared, nil
	})
}
