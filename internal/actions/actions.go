// Package actions holds the demo actions served by the Waypoint server.
// Each action declares its GET route with a routes.GET marker field.
package actions

import (
	"encoding/json"
	"net/http"
	"slices"
	"strings"

	"github.com/JaimeStill/waypoint/pkg/manifest"
	"github.com/JaimeStill/waypoint/pkg/routes"
)

// Article is a demo resource.
type Article struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Store is a read-only in-memory article list.
type Store struct {
	articles []Article
}

// NewStore creates a Store holding articles in the given order.
func NewStore(articles ...Article) *Store {
	return &Store{articles: slices.Clone(articles)}
}

// List returns all articles.
func (s *Store) List() []Article {
	return slices.Clone(s.articles)
}

// Find returns the article with the given id.
func (s *Store) Find(id string) (Article, bool) {
	i := slices.IndexFunc(s.articles, func(a Article) bool { return a.ID == id })
	if i < 0 {
		return Article{}, false
	}
	return s.articles[i], true
}

// Home serves the landing document.
type Home struct {
	routes.GET `route:"/" name:"home"`
}

func (a *Home) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"service": "waypoint"})
}

// ArticleIndex lists articles.
type ArticleIndex struct {
	routes.GET `route:"/articles" name:"articles.index"`
	Store      *Store
}

func (a *ArticleIndex) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Store.List())
}

// ArticleNew serves the new-article form. It is marked first so it wins
// over ArticleShow, whose {id} placeholder also matches "new".
type ArticleNew struct {
	routes.GET `route:"/articles/new,first" name:"articles.new"`
}

func (a *ArticleNew) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"fields": []string{"title"}})
}

// ArticleShow returns a single article.
type ArticleShow struct {
	routes.GET `route:"/articles/{id}" name:"articles.show"`
	Store      *Store
}

func (a *ArticleShow) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	article, ok := a.Store.Find(r.PathValue("id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "article not found"})
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// ArticleLegacy redirects old nested article URLs to the index. It is
// marked last so any more specific article route takes precedence.
type ArticleLegacy struct {
	routes.GET `route:"/articles/{path...},last" name:"articles.legacy"`
}

func (a *ArticleLegacy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/articles", http.StatusMovedPermanently)
}

// All returns the tagged actions in registration order.
func All(store *Store) []any {
	return []any{
		&Home{},
		&ArticleIndex{Store: store},
		&ArticleNew{},
		&ArticleShow{Store: store},
		&ArticleLegacy{},
	}
}

// API returns the JSON API group: /api/articles and /api/articles/{id}
// under a /v1 child group.
func API(store *Store) (routes.Group, error) {
	index, err := routes.Get("/articles", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.List())
	}, routes.Named("api.articles.index"))
	if err != nil {
		return routes.Group{}, err
	}

	show, err := routes.Get("/articles/{id}", (&ArticleShow{Store: store}).ServeHTTP, routes.Named("api.articles.show"))
	if err != nil {
		return routes.Group{}, err
	}

	return routes.Group{
		Prefix: "/api",
		Children: []routes.Group{
			{Prefix: "/v1", Routes: []routes.Route{index, show}},
		},
	}, nil
}

// Catalog returns the handlers that manifest files may bind by name.
func Catalog(store *Store) manifest.Catalog {
	return manifest.Catalog{
		"about": http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"about": "declarative GET routing"})
		}),
		"articles.feed": http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			titles := make([]string, 0)
			for _, a := range store.List() {
				titles = append(titles, a.Title)
			}
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(strings.Join(titles, "\n")))
		}),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
