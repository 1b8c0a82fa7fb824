package utils

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

type contextKey string

const PrincipalKey contextKey = "principal"

// Principal is the authenticated caller decoded from a bearer token.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Scopes []string
}

// MissingScopes lists required scopes the principal was not granted.
func (p *Principal) MissingScopes(required ...string) []string {
	var missing []string
	for _, scope := range required {
		if !slices.Contains(p.Scopes, scope) {
			missing = append(missing, scope)
		}
	}
	return missing
}

func SetPrincipalContext(ctx context.Context, principal *Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}

func GetPrincipalFromContext(ctx context.Context) (*Principal, bool) {
	principal, ok := ctx.Value(PrincipalKey).(*Principal)
	return principal, ok && principal != nil
}
