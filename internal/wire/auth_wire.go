package wire

import (
	"movies-api/internal/adaptor"
	"movies-api/internal/dto/request"
	"movies-api/pkg/middleware"

	"github.com/go-chi/chi/v5"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	errs *middleware.ErrorPipeline,
) {
	// Public routes, credentials are checked by the handlers themselves
	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.Validate[request.SignInRequest](middleware.TargetBody, errs)).
			Post("/sign-in", errs.Handle(authHandler.SignIn))

		r.With(middleware.Validate[request.SignUpRequest](middleware.TargetBody, errs)).
			Post("/sign-up", errs.Handle(authHandler.SignUp))
	})
}
