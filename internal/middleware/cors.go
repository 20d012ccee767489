package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// CORS returns middleware that adds CORS headers for the
// separately-hosted admin client. Origins are matched against the
// configured allowlist; in development mode any localhost origin is
// also accepted so local admin and site builds work out of the box.
func CORS(allowedOrigins []string, isDev bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if isOriginAllowed(origin, allowedOrigins, isDev) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Vary", "Origin")

				// Handle preflight requests
				if r.Method == http.MethodOptions {
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
					w.Header().Set("Access-Control-Max-Age", "3600")
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isOriginAllowed checks an origin against the allowlist. Development
// mode additionally accepts any localhost/127.0.0.1 origin.
func isOriginAllowed(origin string, allowed []string, isDev bool) bool {
	for _, a := range allowed {
		if a == "*" {
			return true
		}
		if strings.EqualFold(a, origin) {
			return true
		}
	}

	if isDev {
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := u.Hostname()
		return u.Scheme == "http" && (host == "localhost" || host == "127.0.0.1")
	}

	return false
}
