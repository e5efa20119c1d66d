package middleware

import (
	"net/http"
	"strings"
)

// CORSMiddleware reflects the request origin when it matches the configured
// allowlist ("*" allows any). Preflight requests are answered without hitting
// the handler chain.
func CORSMiddleware(allowedOrigins, allowedMethods, allowedHeaders string) func(http.Handler) http.Handler {
	origins := make([]string, 0)
	for _, o := range strings.Split(allowedOrigins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			for _, o := range origins {
				if o != "*" && o != origin {
					continue
				}
				if origin != "" {
					w.Header().Set("Access-Control-Allow-Origin", origin)
				} else if o == "*" {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				}
				break
			}

			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Max-Age", "3600")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
