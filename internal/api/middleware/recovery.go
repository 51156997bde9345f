package middleware

import (
	"net/http"

	"github.com/mcdev12/keeperleague/internal/api/response"
	"github.com/rs/zerolog/log"
)

// Recovery converts a handler panic into a 500 error envelope. Nothing is
// allowed to escape the request boundary as anything but the envelope.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("panic", err).
					Str("request_id", GetRequestID(r.Context())).
					Str("path", r.URL.Path).
					Msg("panic recovered")
				response.Err(w, http.StatusInternalServerError, response.CodeInternalError, "an unexpected error occurred")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
