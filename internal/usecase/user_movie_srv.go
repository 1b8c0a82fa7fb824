package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movies-api/internal/data/entity"
	"movies-api/internal/data/repository"
	"movies-api/internal/dto/request"
	"movies-api/internal/dto/response"
	"movies-api/pkg/apperr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserMovieService interface {
	GetUserMovies(ctx context.Context, userID string) ([]response.UserMovieResponse, error)
	CreateUserMovie(ctx context.Context, req *request.CreateUserMovieRequest) (string, error)
	DeleteUserMovie(ctx context.Context, userMovieID string) (string, error)
}

type userMovieService struct {
	repo *repository.Repository // userMovie plus the user and movie lookups
	log  *zap.Logger
	now  func() time.Time
}

func NewUserMovieService(repo *repository.Repository, log *zap.Logger) UserMovieService {
	return &userMovieService{
		repo: repo,
		log:  log.With(zap.String("service", "user_movie")),
		now:  time.Now,
	}
}

func (s *userMovieService) GetUserMovies(ctx context.Context, userID string) ([]response.UserMovieResponse, error) {
	id, err := parseID(userID, "userId")
	if err != nil {
		return nil, err
	}

	userMovies, err := s.repo.UserMovie.FindByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user movies: %w", err)
	}

	return response.UserMoviesToResponse(userMovies), nil
}

func (s *userMovieService) CreateUserMovie(ctx context.Context, req *request.CreateUserMovieRequest) (string, error) {
	userID, err := parseID(req.UserID, "userId")
	if err != nil {
		return "", err
	}
	movieID, err := parseID(req.MovieID, "movieId")
	if err != nil {
		return "", err
	}

	// Both ends of the link must exist
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return "", apperr.NotFound("user not found")
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return "", fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return "", apperr.NotFound("movie not found")
	}

	userMovie := &entity.UserMovie{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: s.now().UTC(),
		},
		UserID:  userID,
		MovieID: movieID,
	}

	if err := s.repo.UserMovie.Create(ctx, userMovie); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", apperr.Validation("movie already in user list",
				map[string]string{"movieId": "Already added"})
		}
		return "", fmt.Errorf("create user movie: %w", err)
	}

	s.log.Info("User movie created",
		zap.String("user_movie_id", userMovie.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("movie_id", movieID.String()),
	)

	return userMovie.ID.String(), nil
}

func (s *userMovieService) DeleteUserMovie(ctx context.Context, userMovieID string) (string, error) {
	id, err := parseID(userMovieID, "userMovieId")
	if err != nil {
		return "", err
	}

	if err := s.repo.UserMovie.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperr.NotFound("user movie not found")
		}
		return "", fmt.Errorf("delete user movie: %w", err)
	}

	s.log.Info("User movie deleted", zap.String("user_movie_id", userMovieID))

	return id.String(), nil
}
