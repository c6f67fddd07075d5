package routes_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/waypoint/pkg/routes"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDiscoverRegistersInSourceOrder(t *testing.T) {
	slowRoute := mustGet(t, "/x", "slow")
	fastRoute := mustGet(t, "/x", "fast")

	slow := routes.SourceFunc(func(ctx context.Context) ([]routes.Route, error) {
		time.Sleep(20 * time.Millisecond)
		return []routes.Route{slowRoute}, nil
	})
	fast := routes.SourceFunc(func(ctx context.Context) ([]routes.Route, error) {
		return []routes.Route{fastRoute}, nil
	})

	table, err := routes.Discover(context.Background(), nil, discardLogger(), slow, fast)
	require.NoError(t, err)

	assert.Equal(t, []string{"slow", "fast"}, names(table.Resolve("/x")))
}

func TestDiscoverMixedSources(t *testing.T) {
	table, err := routes.Discover(
		context.Background(),
		nil,
		discardLogger(),
		routes.Actions(&showArticle{}, &newArticle{}),
		routes.Groups(routes.Group{
			Prefix: "/articles",
			Routes: []routes.Route{mustGet(t, "/{id}", "fallback", routes.Last())},
		}),
	)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Equal(
		t,
		[]string{"articles.new", "routes_test.showArticle", "fallback"},
		names(table.Resolve("/articles/new")),
	)
}

func TestDiscoverFailsOnInvalidDeclaration(t *testing.T) {
	bad := routes.Groups(routes.Group{
		Routes: []routes.Route{{Method: http.MethodGet, Pattern: "/x", First: true, Last: true}},
	})

	table, err := routes.Discover(context.Background(), nil, discardLogger(), bad)
	assert.Nil(t, table)
	assert.ErrorIs(t, err, routes.ErrInvalidDeclaration)
}

func TestDiscoverFailsOnIntrospectionError(t *testing.T) {
	_, err := routes.Discover(context.Background(), nil, discardLogger(), routes.Actions(&conflicting{}))
	assert.ErrorIs(t, err, routes.ErrInvalidDeclaration)
}

func TestDiscoverFailsOnSourceError(t *testing.T) {
	errBoom := errors.New("boom")
	failing := routes.SourceFunc(func(ctx context.Context) ([]routes.Route, error) {
		return nil, errBoom
	})

	_, err := routes.Discover(context.Background(), nil, discardLogger(), routes.Groups(), failing)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "source 1")
}

func TestDiscoverNoSources(t *testing.T) {
	table, err := routes.Discover(context.Background(), nil, discardLogger())
	require.NoError(t, err)
	assert.Zero(t, table.Len())
	assert.Empty(t, table.Resolve("/"))
}
