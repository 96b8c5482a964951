// Package cors restricts browser access to the configured client origin.
package cors

import "net/http"

// Config holds CORS configuration
type Config struct {
	// AllowedOrigin is the single origin the mobile/web client calls from.
	// "*" allows any origin.
	AllowedOrigin string
}

// Middleware applies CORS headers and answers preflight requests.
func Middleware(config Config) func(http.Handler) http.Handler {
	origin := config.AllowedOrigin
	if origin == "" {
		origin = "*"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestOrigin := r.Header.Get("Origin")
			if requestOrigin != "" {
				if origin == "*" || requestOrigin == origin {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
				}
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
				w.Header().Set("Access-Control-Max-Age", "300")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
