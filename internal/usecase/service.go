package usecase

import (
	"movies-api/internal/data/repository"
	"movies-api/pkg/token"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	Movie     MovieService
	UserMovie UserMovieService
}

func NewService(repo *repository.Repository, tokens *token.Manager, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, tokens, log),
		Movie:     NewMovieService(repo.Movie, log),
		UserMovie: NewUserMovieService(repo, log),
	}
}
