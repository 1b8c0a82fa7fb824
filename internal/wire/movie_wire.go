package wire

import (
	"movies-api/internal/adaptor"
	"movies-api/internal/dto/request"
	"movies-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

// Every movie route runs guard -> scopes -> validation -> handler.
func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	verifier middleware.TokenVerifier,
	errs *middleware.ErrorPipeline,
) {
	movieID := middleware.Validate[request.MovieIDParam](middleware.TargetParams, errs)

	r.Route("/api/movies", func(r chi.Router) {
		r.Use(middleware.Guard(verifier, errs))

		// GET /api/movies?tags=a&tags=b
		r.With(
			middleware.RequireScopes(errs, "read:movies"),
			middleware.Validate[request.MovieListQuery](middleware.TargetQuery, errs),
		).Get("/", errs.Handle(movieHandler.GetMovies))

		// GET /api/movies/{movieId}
		r.With(
			middleware.RequireScopes(errs, "read:movies"),
			movieID,
		).Get("/{movieId}", errs.Handle(movieHandler.GetMovie))

		// POST /api/movies
		r.With(
			middleware.RequireScopes(errs, "create:movies"),
			middleware.Validate[request.CreateMovieRequest](middleware.TargetBody, errs),
		).Post("/", errs.Handle(movieHandler.CreateMovie))

		// PUT /api/movies/{movieId}
		r.With(
			middleware.RequireScopes(errs, "update:movies"),
			movieID,
			middleware.Validate[request.UpdateMovieRequest](middleware.TargetBody, errs),
		).Put("/{movieId}", errs.Handle(movieHandler.UpdateMovie))

		// DELETE /api/movies/{movieId}
		r.With(
			middleware.RequireScopes(errs, "delete:movies"),
			movieID,
		).Delete("/{movieId}", errs.Handle(movieHandler.DeleteMovie))
	})
}
