package adaptor

import (
	"net/http"

	"movies-api/internal/dto/request"
	"movies-api/internal/usecase"
	"movies-api/pkg/apperr"
	"movies-api/pkg/middleware"
	"movies-api/pkg/utils"

	"go.uber.org/zap"
)

type UserMovieHandler struct {
	service usecase.UserMovieService
	log     *zap.Logger
}

func NewUserMovieHandler(service usecase.UserMovieService, log *zap.Logger) *UserMovieHandler {
	return &UserMovieHandler{
		service: service,
		log:     log.With(zap.String("handler", "user_movie")),
	}
}

// GetUserMovies handles GET /api/user-movies?userId=
func (h *UserMovieHandler) GetUserMovies(w http.ResponseWriter, r *http.Request) error {
	query, ok := middleware.ValidatedFrom[request.UserMovieListQuery](r.Context())
	if !ok {
		return apperr.BadRequest("missing user movies query")
	}

	userMovies, err := h.service.GetUserMovies(r.Context(), query.UserID)
	if err != nil {
		return err
	}

	return utils.ResponseSuccess(w, utils.BuildMessage("user movie", "list"), userMovies)
}

// CreateUserMovie handles POST /api/user-movies
func (h *UserMovieHandler) CreateUserMovie(w http.ResponseWriter, r *http.Request) error {
	req, ok := middleware.ValidatedFrom[request.CreateUserMovieRequest](r.Context())
	if !ok {
		return apperr.BadRequest("missing user movie body")
	}

	userMovieID, err := h.service.CreateUserMovie(r.Context(), req)
	if err != nil {
		return err
	}

	return utils.ResponseCreated(w, utils.BuildMessage("user movie", "create"), userMovieID)
}

// DeleteUserMovie handles DELETE /api/user-movies/{userMovieId}
func (h *UserMovieHandler) DeleteUserMovie(w http.ResponseWriter, r *http.Request) error {
	params, ok := middleware.ValidatedFrom[request.UserMovieIDParam](r.Context())
	if !ok {
		return apperr.BadRequest("missing user movie id")
	}

	deletedID, err := h.service.DeleteUserMovie(r.Context(), params.UserMovieID)
	if err != nil {
		return err
	}

	return utils.ResponseSuccess(w, utils.BuildMessage("user movie", "delete"), deletedID)
}
