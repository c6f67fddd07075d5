package middleware

import (
	"net/http"
	"strings"

	"github.com/dimfeld/httppath"
)

// Normalize returns middleware that redirects requests to the canonical form
// of their path: dot segments and repeated slashes are removed and, when
// trimSlash is set, a trailing slash is dropped. The root path "/" is
// preserved. Handlers behind it only see normalized paths.
func Normalize(trimSlash bool) Func {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			target := canonicalPath(r.URL.Path, trimSlash)
			if target == r.URL.Path {
				next.ServeHTTP(w, r)
				return
			}

			if r.URL.RawQuery != "" {
				target += "?" + r.URL.RawQuery
			}

			code := http.StatusMovedPermanently
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				code = http.StatusPermanentRedirect
			}
			http.Redirect(w, r, target, code)
		})
	}
}

func canonicalPath(path string, trimSlash bool) string {
	cleaned := httppath.Clean(path)
	if trimSlash && len(cleaned) > 1 {
		cleaned = strings.TrimSuffix(cleaned, "/")
	}
	return cleaned
}
