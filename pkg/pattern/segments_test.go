package pattern_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/waypoint/pkg/pattern"
)

func TestSegmentsMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		want    bool
		params  pattern.Params
	}{
		{"root", "/", "/", true, nil},
		{"literal", "/users", "/users", true, nil},
		{"literal mismatch", "/users", "/accounts", false, nil},
		{"literal extra segment", "/users", "/users/1", false, nil},
		{"literal trailing slash", "/users", "/users/", false, nil},
		{"placeholder", "/users/{id}", "/users/42", true, pattern.Params{{Name: "id", Value: "42"}}},
		{"placeholder empty segment", "/users/{id}", "/users/", false, nil},
		{"placeholder missing", "/users/{id}", "/users", false, nil},
		{
			"two placeholders",
			"/users/{id}/posts/{post}",
			"/users/7/posts/hello",
			true,
			pattern.Params{{Name: "id", Value: "7"}, {Name: "post", Value: "hello"}},
		},
		{"remainder", "/files/{path...}", "/files/a/b/c.txt", true, pattern.Params{{Name: "path", Value: "a/b/c.txt"}}},
		{"remainder empty", "/files/{path...}", "/files/", true, pattern.Params{{Name: "path", Value: ""}}},
		{"remainder without slash", "/files/{path...}", "/files", false, nil},
		{"cleaned pattern", "/users/./{id}", "/users/9", true, pattern.Params{{Name: "id", Value: "9"}}},
		{"relative path", "/users", "users", false, nil},
	}

	m := pattern.NewSegments()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, ok := m.Match(tt.pattern, tt.path)
			assert.Equal(t, tt.want, ok)
			if tt.want {
				assert.Equal(t, tt.params, params)
			}
		})
	}
}

func TestSegmentsCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
	}{
		{"no leading slash", "users"},
		{"empty", ""},
		{"unclosed brace", "/users/{id"},
		{"partial segment", "/users/id-{id}"},
		{"empty name", "/users/{}"},
		{"empty remainder name", "/files/{...}"},
		{"remainder not last", "/files/{path...}/meta"},
		{"duplicate name", "/users/{id}/friends/{id}"},
		{"nested braces", "/users/{{id}}"},
	}

	m := pattern.NewSegments()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Compile(tt.pattern)
			require.Error(t, err)
			assert.True(t, errors.Is(err, pattern.ErrInvalidPattern), "got %v", err)

			_, ok := m.Match(tt.pattern, "/users/1")
			assert.False(t, ok, "invalid pattern must never match")
		})
	}
}

func TestSegmentsConcurrentMatch(t *testing.T) {
	m := pattern.NewSegments()

	var wg sync.WaitGroup
	for range 16 {
		wg.Go(func() {
			for range 100 {
				params, ok := m.Match("/users/{id}", "/users/5")
				if !ok || params.Get("id") != "5" {
					t.Error("concurrent match failed")
					return
				}
			}
		})
	}
	wg.Wait()
}

func TestParamsLookup(t *testing.T) {
	params := pattern.Params{{Name: "id", Value: "1"}, {Name: "empty", Value: ""}}

	assert.Equal(t, "1", params.Get("id"))
	assert.Equal(t, "", params.Get("missing"))

	v, ok := params.Lookup("empty")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = params.Lookup("missing")
	assert.False(t, ok)
}

func TestExact(t *testing.T) {
	_, ok := pattern.Exact.Match("/a", "/a")
	assert.True(t, ok)

	_, ok = pattern.Exact.Match("/a", "/a/")
	assert.False(t, ok)
}
