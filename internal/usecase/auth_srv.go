package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"movies-api/internal/data/entity"
	"movies-api/internal/data/repository"
	"movies-api/internal/dto/request"
	"movies-api/internal/dto/response"
	"movies-api/pkg/apperr"
	"movies-api/pkg/token"
	"movies-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scope sets granted by the seeded API keys.
var (
	AdminScopes = []string{
		"signin:auth", "signup:auth",
		"read:movies", "create:movies", "update:movies", "delete:movies",
		"read:user-movies", "create:user-movies", "delete:user-movies",
	}
	PublicScopes = []string{
		"signin:auth", "signup:auth",
		"read:movies",
		"read:user-movies", "create:user-movies", "delete:user-movies",
	}
)

type AuthService interface {
	SignIn(ctx context.Context, req *request.SignInRequest) (*response.AuthResponse, error)
	SignUp(ctx context.Context, req *request.SignUpRequest) (string, error)
	VerifyToken(ctx context.Context, raw string) (*utils.Principal, error)
	CreateAPIKey(ctx context.Context, scopes []string) (string, error)
}

type authService struct {
	repo   *repository.Repository // grouping userRepo and apiKeyRepo
	tokens *token.Manager
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	tokens *token.Manager,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) SignIn(ctx context.Context, req *request.SignInRequest) (*response.AuthResponse, error) {
	// 1. Resolve the API key first, it decides the scopes
	apiKey, err := s.repo.APIKey.FindByToken(ctx, req.APIKeyToken)
	if err != nil {
		return nil, fmt.Errorf("find api key: %w", err)
	}
	if apiKey == nil {
		s.log.Warn("Sign in with unknown api key")
		return nil, apperr.Unauthorized("invalid api key")
	}

	// 2. Check credentials
	user, err := s.repo.User.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid credentials", zap.String("email", req.Email))
		return nil, apperr.Unauthorized("invalid credentials")
	}

	// 3. Issue token
	signed, expiresAt, err := s.tokens.Issue(token.Subject{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Scopes: apiKey.Scopes,
	})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info("User signed in",
		zap.String("user_id", user.ID.String()),
		zap.Strings("scopes", apiKey.Scopes),
	)

	return &response.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      response.UserToResponse(user),
	}, nil
}

func (s *authService) SignUp(ctx context.Context, req *request.SignUpRequest) (string, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return "", apperr.Validation("email already registered",
			map[string]string{"email": "Already registered"})
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:         req.Name,
		Email:        email,
		PasswordHash: hashedPassword,
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", apperr.Validation("email already registered",
				map[string]string{"email": "Already registered"})
		}
		return "", fmt.Errorf("create user: %w", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	return user.ID.String(), nil
}

// VerifyToken checks the token and that its subject still exists.
func (s *authService) VerifyToken(ctx context.Context, raw string) (*utils.Principal, error) {
	claims, err := s.tokens.Parse(raw)
	if err != nil {
		if errors.Is(err, token.ErrExpiredToken) {
			return nil, apperr.Unauthorized("token expired")
		}
		return nil, &apperr.Error{Status: http.StatusUnauthorized, Message: "invalid token", Err: err}
	}

	userID := uuid.MustParse(claims.Subject)
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find token user: %w", err)
	}
	if user == nil {
		return nil, apperr.Unauthorized("unknown user")
	}

	return &utils.Principal{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Scopes: claims.Scopes,
	}, nil
}

// CreateAPIKey stores a new API key granting scopes and returns its token.
func (s *authService) CreateAPIKey(ctx context.Context, scopes []string) (string, error) {
	tok, err := utils.GenerateAPIKeyToken()
	if err != nil {
		return "", fmt.Errorf("generate api key: %w", err)
	}

	key := &entity.APIKey{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		Token:  tok,
		Scopes: scopes,
	}

	if err := s.repo.APIKey.Create(ctx, key); err != nil {
		return "", fmt.Errorf("create api key: %w", err)
	}

	s.log.Info("API key created",
		zap.String("api_key_id", key.ID.String()),
		zap.Strings("scopes", scopes),
	)

	return tok, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
