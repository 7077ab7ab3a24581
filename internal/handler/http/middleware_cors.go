package http

import (
	"net/http"

	"github.com/go-chi/cors"
)

var corsOptions = cors.Options{
	AllowedOrigins:   []string{"*"},
	AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
	AllowedHeaders:   []string{"Accept", "Accept-Language", "Authorization", "Content-Type", "Content-Encoding", traceIDHeader},
	ExposedHeaders:   []string{traceIDHeader},
	AllowCredentials: false,
	MaxAge:           300,
}

// withCORS answers preflight requests and adds the CORS headers to every
// response.
func withCORS() func(http.Handler) http.Handler {
	return cors.Handler(corsOptions)
}

// withOptions ends every OPTIONS request the CORS handler let through with
// an empty 204.
func withOptions(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
