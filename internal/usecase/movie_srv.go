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

type MovieService interface {
	GetMovies(ctx context.Context, tags []string) ([]response.MovieResponse, error)
	GetMovie(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (string, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.UpdateMovieRequest) (string, error)
	DeleteMovie(ctx context.Context, movieID string) (string, error)
}

type movieService struct {
	repo repository.MovieRepository
	log  *zap.Logger
	now  func() time.Time
}

func NewMovieService(repo repository.MovieRepository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
		now:  time.Now,
	}
}

func (s *movieService) GetMovies(ctx context.Context, tags []string) ([]response.MovieResponse, error) {
	movies, err := s.repo.FindAll(ctx, tags)
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	s.log.Debug("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Strings("tags", tags),
	)

	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetMovie(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (string, error) {
	now := s.now().UTC()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:         req.Title,
		Year:          req.Year,
		Cover:         req.Cover,
		Description:   req.Description,
		Duration:      req.Duration,
		ContentRating: req.ContentRating,
		Source:        req.Source,
		Tags:          dedupeTags(req.Tags),
	}

	if err := s.repo.Create(ctx, movie); err != nil {
		return "", fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	return movie.ID.String(), nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.UpdateMovieRequest) (string, error) {
	movie, err := s.findMovie(ctx, movieID)
	if err != nil {
		return "", err
	}

	// Apply partial updates only for provided fields
	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Year != nil {
		movie.Year = *req.Year
	}
	if req.Cover != nil {
		movie.Cover = *req.Cover
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.Duration != nil {
		movie.Duration = *req.Duration
	}
	if req.ContentRating != nil {
		movie.ContentRating = *req.ContentRating
	}
	if req.Source != nil {
		movie.Source = *req.Source
	}
	if req.Tags != nil {
		movie.Tags = dedupeTags(*req.Tags)
	}
	movie.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperr.NotFound("movie not found")
		}
		return "", fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated",
		zap.String("movie_id", movieID),
		zap.String("title", movie.Title),
	)

	return movie.ID.String(), nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) (string, error) {
	id, err := parseMovieID(movieID)
	if err != nil {
		return "", err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperr.NotFound("movie not found")
		}
		return "", fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", movieID))

	return id.String(), nil
}

func (s *movieService) findMovie(ctx context.Context, movieID string) (*entity.Movie, error) {
	id, err := parseMovieID(movieID)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie: %w", err)
	}
	if movie == nil {
		return nil, apperr.NotFound("movie not found")
	}

	return movie, nil
}

func parseMovieID(movieID string) (uuid.UUID, error) {
	return parseID(movieID, "movieId")
}

// parseID reports a malformed id as a validation error on field.
func parseID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid "+field,
			map[string]string{field: "Must be a valid UUID"})
	}
	return id, nil
}

// dedupeTags keeps the first occurrence of each tag; tags behave as a set.
func dedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
