package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

// AdminOnly пропускает запрос только с действующим токеном администратора
func AdminOnly(authorizer Authorizer, logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := authorizer.RequireAdmin(r.Context(), handlers.BearerToken(r))
			if err != nil {
				logger.Warn("%s %s - unauthorized: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w)
				return
			}
			logger.Info("%s %s - admin=%s", r.Method, r.URL.Path, principal.Subject)
			next.ServeHTTP(w, r)
		})
	}
}
