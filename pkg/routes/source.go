package routes

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/waypoint/pkg/pattern"
)

// Source yields route declarations discovered from some origin: tagged
// action structs, route groups, or a manifest file.
type Source interface {
	Load(ctx context.Context) ([]Route, error)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(ctx context.Context) ([]Route, error)

// Load calls f(ctx).
func (f SourceFunc) Load(ctx context.Context) ([]Route, error) {
	return f(ctx)
}

// Actions returns a Source that introspects each action in order.
func Actions(actions ...any) Source {
	return SourceFunc(func(ctx context.Context) ([]Route, error) {
		var out []Route
		for _, action := range actions {
			declared, err := Introspect(action)
			if err != nil {
				return nil, err
			}
			out = append(out, declared...)
		}
		return out, nil
	})
}

// Groups returns a Source yielding the flattened routes of each group in
// order.
func Groups(groups ...Group) Source {
	return SourceFunc(func(ctx context.Context) ([]Route, error) {
		var out []Route
		for _, group := range groups {
			out = append(out, group.Flatten()...)
		}
		return out, nil
	})
}

// Discover loads every source concurrently, registers the results in source
// order and returns the sealed table. Any load failure or invalid
// declaration aborts discovery.
func Discover(ctx context.Context, matcher pattern.Matcher, logger *slog.Logger, sources ...Source) (*Table, error) {
	loaded := make([][]Route, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, source := range sources {
		g.Go(func() error {
			declared, err := source.Load(gctx)
			if err != nil {
				return fmt.Errorf("source %d: %w", i, err)
			}
			loaded[i] = declared
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	reg := NewRegistry(matcher)
	for _, declared := range loaded {
		for _, route := range declared {
			if err := reg.Register(route); err != nil {
				return nil, err
			}
			logger.Debug(
				"route registered",
				"name", route.Name,
				"pattern", route.Pattern,
				"first", route.First,
				"last", route.Last,
			)
		}
	}

	table := reg.Table()
	logger.Info("routes discovered", "routes", table.Len(), "table", table.ID())
	return table, nil
}
