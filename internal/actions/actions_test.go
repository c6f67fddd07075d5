package actions_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/waypoint/internal/actions"
	"github.com/JaimeStill/waypoint/pkg/routes"
)

func store() *actions.Store {
	return actions.NewStore(
		actions.Article{ID: "1", Title: "Hello"},
		actions.Article{ID: "2", Title: "World"},
	)
}

func table(t *testing.T) *routes.Table {
	t.Helper()
	reg := routes.NewRegistry(nil)
	for _, action := range actions.All(store()) {
		declared, err := routes.Introspect(action)
		require.NoError(t, err)
		for _, rt := range declared {
			require.NoError(t, reg.Register(rt))
		}
	}
	return reg.Table()
}

func TestActionsDeclareRoutes(t *testing.T) {
	tbl := table(t)
	assert.Equal(t, 5, tbl.Len())
}

func TestActionsResolutionOrder(t *testing.T) {
	tbl := table(t)

	tests := []struct {
		path  string
		names []string
	}{
		{"/", []string{"home"}},
		{"/articles", []string{"articles.index"}},
		{"/articles/new", []string{"articles.new", "articles.show", "articles.legacy"}},
		{"/articles/7", []string{"articles.show", "articles.legacy"}},
		{"/articles/2019/old", []string{"articles.legacy"}},
		{"/nowhere", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var got []string
			for _, m := range tbl.Resolve(tt.path) {
				got = append(got, m.Name)
			}
			assert.Equal(t, tt.names, got)
		})
	}
}

func TestArticleShow(t *testing.T) {
	action := &actions.ArticleShow{Store: store()}

	req := httptest.NewRequest(http.MethodGet, "/articles/2", nil)
	req.SetPathValue("id", "2")
	rec := httptest.NewRecorder()
	action.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var article actions.Article
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&article))
	assert.Equal(t, "World", article.Title)

	req = httptest.NewRequest(http.MethodGet, "/articles/9", nil)
	req.SetPathValue("id", "9")
	rec = httptest.NewRecorder()
	action.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArticleLegacyRedirects(t *testing.T) {
	rec := httptest.NewRecorder()
	(&actions.ArticleLegacy{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles/a/b", nil))

	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/articles", rec.Header().Get("Location"))
}

func TestCatalog(t *testing.T) {
	catalog := actions.Catalog(store())
	require.Contains(t, catalog, "about")
	require.Contains(t, catalog, "articles.feed")

	rec := httptest.NewRecorder()
	catalog["articles.feed"].ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))
	assert.Equal(t, "Hello\nWorld", rec.Body.String())
}

func TestAPIGroup(t *testing.T) {
	group, err := actions.API(store())
	require.NoError(t, err)

	flat := group.Flatten()
	require.Len(t, flat, 2)
	assert.Equal(t, "/api/v1/articles", flat[0].Pattern)
	assert.Equal(t, "/api/v1/articles/{id}", flat[1].Pattern)
	assert.Equal(t, "api.articles.show", flat[1].Name)
}
