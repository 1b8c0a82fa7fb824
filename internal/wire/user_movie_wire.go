package wire

import (
	"movies-api/internal/adaptor"
	"movies-api/internal/dto/request"
	"movies-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireUserMovie(
	r chi.Router,
	userMovieHandler *adaptor.UserMovieHandler,
	verifier middleware.TokenVerifier,
	errs *middleware.ErrorPipeline,
) {
	r.Route("/api/user-movies", func(r chi.Router) {
		r.Use(middleware.Guard(verifier, errs))

		// GET /api/user-movies?userId=
		r.With(
			middleware.RequireScopes(errs, "read:user-movies"),
			middleware.Validate[request.UserMovieListQuery](middleware.TargetQuery, errs),
		).Get("/", errs.Handle(userMovieHandler.GetUserMovies))

		// POST /api/user-movies
		r.With(
			middleware.RequireScopes(errs, "create:user-movies"),
			middleware.Validate[request.CreateUserMovieRequest](middleware.TargetBody, errs),
		).Post("/", errs.Handle(userMovieHandler.CreateUserMovie))

		// DELETE /api/user-movies/{userMovieId}
		r.With(
			middleware.RequireScopes(errs, "delete:user-movies"),
			middleware.Validate[request.UserMovieIDParam](middleware.TargetParams, errs),
		).Delete("/{userMovieId}", errs.Handle(userMovieHandler.DeleteUserMovie))
	})
}
