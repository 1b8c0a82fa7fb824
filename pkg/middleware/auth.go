package middleware

import (
	"context"
	"net/http"
	"strings"

	"movies-api/pkg/apperr"
	"movies-api/pkg/utils"
)

// TokenVerifier resolves a raw bearer token into the principal it was issued for.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*utils.Principal, error)
}

// Guard rejects requests without a valid bearer token and stores the
// principal in the request context.
func Guard(verifier TokenVerifier, errs *ErrorPipeline) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Authorization")

			token, err := bearerToken(r)
			if err != nil {
				errs.Fail(w, r, err)
				return
			}

			principal, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				errs.Fail(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetPrincipalContext(r.Context(), principal)))
		})
	}
}

func bearerToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", apperr.Unauthorized("missing authorization token")
	}

	scheme, token, ok := strings.Cut(authHeader, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", apperr.Unauthorized("invalid token format, use: Bearer <token>")
	}

	return token, nil
}
