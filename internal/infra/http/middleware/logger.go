package middleware

import (
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// RequestLogger injeta no contexto um logger com o request id do chi.
// Todo o pipeline loga através do logger do contexto — nada de logger
// global mutável carregando correlation id
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLogger := logger.With().
				Str("request_id", chimiddleware.GetReqID(r.Context())).
				Str("path", r.URL.Path).
				Logger()

			ctx := reqLogger.WithContext(r.Context())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
