package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/waypoint/pkg/middleware"
)

func TestApplyOrder(t *testing.T) {
	var order []string
	mw := middleware.New()

	tag := func(name string) middleware.Func {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	mw.Use(tag("first"))
	mw.Use(tag("second"), tag("third"))

	handler := mw.Apply(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second", "third", "handler"}, order)
}

func TestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing?q=1", nil))

	out := buf.String()
	assert.Contains(t, out, "msg=request")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "uri=/missing?q=1")
	assert.Contains(t, out, "status=404")
	assert.Contains(t, out, "level=INFO")
}

func TestLoggerServerErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := middleware.Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestNormalize(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name      string
		trimSlash bool
		method    string
		target    string
		code      int
		location  string
	}{
		{"canonical", true, http.MethodGet, "/users", http.StatusOK, ""},
		{"root", true, http.MethodGet, "/", http.StatusOK, ""},
		{"trailing slash", true, http.MethodGet, "/users/", http.StatusMovedPermanently, "/users"},
		{"trailing slash kept", false, http.MethodGet, "/users/", http.StatusOK, ""},
		{"trailing slash with query", true, http.MethodGet, "/users/?page=2", http.StatusMovedPermanently, "/users?page=2"},
		{"repeated slashes", false, http.MethodGet, "/users//7", http.StatusMovedPermanently, "/users/7"},
		{"dot segments", true, http.MethodGet, "/a/./b/../c", http.StatusMovedPermanently, "/a/c"},
		{"non-GET redirect", true, http.MethodPost, "/users/", http.StatusPermanentRedirect, "/users"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.Normalize(tt.trimSlash)(ok)

			req := httptest.NewRequest(tt.method, "/", nil)
			req.URL.Path, req.URL.RawQuery, _ = strings.Cut(tt.target, "?")

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
			if tt.location != "" {
				assert.Equal(t, tt.location, rec.Header().Get("Location"))
			}
		})
	}
}
