package adaptor

import (
	"movies-api/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth      *AuthHandler
	Movie     *MovieHandler
	UserMovie *UserMovieHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger, debug bool) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(service.Auth, log),
		Movie:     NewMovieHandler(service.Movie, log, debug),
		UserMovie: NewUserMovieHandler(service.UserMovie, log),
	}
}
