package middleware

import (
	"net/http"
)

// SimpleTokenAuth is a middleware which returns a HTTP 401 response if the
// provided x-cloudgov-token header does not match the configured server
// token. An empty configured token disables the check entirely, which is
// the demo-mode default.
func SimpleTokenAuth(token string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			provided := r.Header.Get("x-cloudgov-token")
			if provided != token {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
			} else {
				next.ServeHTTP(w, r)
			}
		}
		return http.HandlerFunc(fn)
	}
}
