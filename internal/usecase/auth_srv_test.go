package usecase

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"
	"time"

	"movies-api/internal/data/repository"
	"movies-api/internal/dto/request"
	"movies-api/pkg/token"

	"go.uber.org/zap"
)

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	tokens := token.NewManager("test-secret", "movies-api-test", time.Minute)
	return NewAuthService(repository.NewMemoryRepository(), tokens, zap.NewNop())
}

func signUp(t *testing.T, svc AuthService, email string) string {
	t.Helper()
	id, err := svc.SignUp(context.Background(), &request.SignUpRequest{
		Name:     "Ada",
		Email:    email,
		Password: "correct horse",
	})
	if err != nil {
		t.Fatalf("sign up: %v", err)
	}
	return id
}

func TestSignInIssuesScopedToken(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	userID := signUp(t, svc, "Ada@Example.com ")
	apiKey, err := svc.CreateAPIKey(ctx, PublicScopes)
	if err != nil {
		t.Fatalf("create api key: %v", err)
	}

	resp, err := svc.SignIn(ctx, &request.SignInRequest{
		Email:       "ada@example.com",
		Password:    "correct horse",
		APIKeyToken: apiKey,
	})
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if resp.Token == "" || resp.User.ID != userID {
		t.Fatalf("unexpected auth response %+v", resp)
	}

	principal, err := svc.VerifyToken(ctx, resp.Token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if principal.UserID.String() != userID {
		t.Fatalf("unexpected principal %+v", principal)
	}
	if !slices.Equal(principal.Scopes, PublicScopes) {
		t.Fatalf("expected public scopes, got %v", principal.Scopes)
	}
	if len(principal.MissingScopes("create:movies")) == 0 {
		t.Fatal("public key must not grant create:movies")
	}
}

func TestSignInFailures(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	signUp(t, svc, "ada@example.com")
	apiKey, err := svc.CreateAPIKey(ctx, AdminScopes)
	if err != nil {
		t.Fatalf("create api key: %v", err)
	}

	cases := []struct {
		name string
		req  request.SignInRequest
	}{
		{"unknown api key", request.SignInRequest{Email: "ada@example.com", Password: "correct horse", APIKeyToken: "nope"}},
		{"wrong password", request.SignInRequest{Email: "ada@example.com", Password: "wrong horse", APIKeyToken: apiKey}},
		{"unknown user", request.SignInRequest{Email: "bob@example.com", Password: "correct horse", APIKeyToken: apiKey}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SignIn(ctx, &tc.req)
			expectStatus(t, err, http.StatusUnauthorized)
		})
	}
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)
	signUp(t, svc, "ada@example.com")

	_, err := svc.SignUp(context.Background(), &request.SignUpRequest{
		Name:     "Other Ada",
		Email:    "ADA@example.com",
		Password: "another secret",
	})
	expectStatus(t, err, http.StatusBadRequest)
}

func TestVerifyTokenRejects(t *testing.T) {
	ctx := context.Background()
	svc := newTestAuthService(t)

	_, err := svc.VerifyToken(ctx, "garbage")
	expectStatus(t, err, http.StatusUnauthorized)
	if !errors.Is(err, token.ErrInvalidToken) {
		t.Fatalf("expected wrapped ErrInvalidToken, got %v", err)
	}

	// Signed by a different secret.
	other := token.NewManager("other-secret", "movies-api-test", time.Minute)
	forged, _, err := other.Issue(token.Subject{Scopes: AdminScopes})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_, err = svc.VerifyToken(ctx, forged)
	expectStatus(t, err, http.StatusUnauthorized)
}

func TestVerifyTokenRequiresExistingUser(t *testing.T) {
	tokens := token.NewManager("test-secret", "movies-api-test", time.Minute)
	svc := NewAuthService(repository.NewMemoryRepository(), tokens, zap.NewNop())

	// Valid signature, but the subject never signed up.
	raw, _, err := tokens.Issue(token.Subject{Email: "ghost@example.com", Scopes: AdminScopes})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	_, err = svc.VerifyToken(context.Background(), raw)
	expectStatus(t, err, http.StatusUnauthorized)
}
