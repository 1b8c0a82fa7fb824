package middleware

import (
	"net/http"
	"strings"

	"movies-api/pkg/apperr"
	"movies-api/pkg/utils"
)

// RequireScopes lets the request through only when the principal set by
// Guard holds every scope listed.
func RequireScopes(errs *ErrorPipeline, scopes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := utils.GetPrincipalFromContext(r.Context())
			if !ok {
				errs.Fail(w, r, apperr.Unauthorized("authentication required"))
				return
			}

			if missing := principal.MissingScopes(scopes...); len(missing) > 0 {
				forbidden := apperr.Forbidden("insufficient scopes")
				forbidden.Details = map[string]string{"missing": strings.Join(missing, " ")}
				errs.Fail(w, r, forbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
