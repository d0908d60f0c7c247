package httpx

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig mirrors the browser-facing CORS policy: an allow-list of
// origins with credentialed requests enabled.
type CORSConfig struct {
	AllowedOrigins []string
	MaxAge         int // seconds; 0 uses the default of 3600
}

var (
	corsMethods = strings.Join([]string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodDelete, http.MethodOptions,
	}, ", ")
	corsHeaders = "Content-Type, Authorization, X-Requested-With, Accept"
	corsExposed = "Authorization, Content-Disposition"
)

// CORSMiddleware answers preflight requests directly and decorates all other
// responses for allowed origins. It runs before authentication so that
// preflights, which carry no credentials, are never blocked by auth.
func CORSMiddleware(cfg CORSConfig) Middleware {
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = 3600
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && slices.Contains(cfg.AllowedOrigins, origin) {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Expose-Headers", corsExposed)
				h.Add("Vary", "Origin")

				if r.Method == http.MethodOptions {
					h.Set("Access-Control-Allow-Methods", corsMethods)
					h.Set("Access-Control-Allow-Headers", corsHeaders)
					h.Set("Access-Control-Max-Age", strconv.Itoa(maxAge))
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
