package adaptor

import (
	"net/http"

	"movies-api/internal/dto/request"
	"movies-api/internal/usecase"
	"movies-api/pkg/apperr"
	"movies-api/pkg/middleware"
	"movies-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Client cache hints, in seconds.
const (
	FiveMinutesInSeconds  = 5 * 60
	SixtyMinutesInSeconds = 60 * 60
)

type MovieHandler struct {
	service usecase.MovieService
	log     *zap.Logger
	debug   bool
}

func NewMovieHandler(service usecase.MovieService, log *zap.Logger, debug bool) *MovieHandler {
	return &MovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "movie")),
		debug:   debug,
	}
}

// GetMovies handles GET /api/movies
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) error {
	var tags []string
	if query, ok := middleware.ValidatedFrom[request.MovieListQuery](r.Context()); ok {
		tags = query.Tags
	}

	movies, err := h.service.GetMovies(r.Context(), tags)
	if err != nil {
		return err
	}

	utils.CacheResponse(w, FiveMinutesInSeconds, h.debug)
	return utils.ResponseSuccess(w, utils.BuildMessage("movie", "list"), movies)
}

// GetMovie handles GET /api/movies/{movieId}
func (h *MovieHandler) GetMovie(w http.ResponseWriter, r *http.Request) error {
	movieID, err := movieIDFrom(r)
	if err != nil {
		return err
	}

	movie, err := h.service.GetMovie(r.Context(), movieID)
	if err != nil {
		return err
	}

	utils.CacheResponse(w, SixtyMinutesInSeconds, h.debug)
	return utils.ResponseSuccess(w, utils.BuildMessage("movie", "retrieve"), movie)
}

// CreateMovie handles POST /api/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) error {
	req, ok := middleware.ValidatedFrom[request.CreateMovieRequest](r.Context())
	if !ok {
		return apperr.BadRequest("missing movie body")
	}

	movieID, err := h.service.CreateMovie(r.Context(), req)
	if err != nil {
		return err
	}

	return utils.ResponseCreated(w, utils.BuildMessage("movie", "create"), movieID)
}

// UpdateMovie handles PUT /api/movies/{movieId}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) error {
	movieID, err := movieIDFrom(r)
	if err != nil {
		return err
	}

	req, ok := middleware.ValidatedFrom[request.UpdateMovieRequest](r.Context())
	if !ok {
		return apperr.BadRequest("missing movie body")
	}

	updatedID, err := h.service.UpdateMovie(r.Context(), movieID, req)
	if err != nil {
		return err
	}

	return utils.ResponseSuccess(w, utils.BuildMessage("movie", "update"), updatedID)
}

// DeleteMovie handles DELETE /api/movies/{movieId}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) error {
	movieID, err := movieIDFrom(r)
	if err != nil {
		return err
	}

	deletedID, err := h.service.DeleteMovie(r.Context(), movieID)
	if err != nil {
		return err
	}

	return utils.ResponseSuccess(w, utils.BuildMessage("movie", "delete"), deletedID)
}

func movieIDFrom(r *http.Request) (string, error) {
	if params, ok := middleware.ValidatedFrom[request.MovieIDParam](r.Context()); ok {
		return params.MovieID, nil
	}
	if movieID := chi.URLParam(r, "movieId"); movieID != "" {
		return movieID, nil
	}
	return "", apperr.Validation("movie id is required",
		map[string]string{"movieId": "This field is required"})
}
