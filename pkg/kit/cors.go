package kit

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows any origin, method and header. Credentials stay disabled since
// a wildcard origin cannot carry them.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Location", RequestIDHeader},
		MaxAge:         300,
	})
}
