package wire

import (
	"net/http"

	"movies-api/internal/adaptor"
	"movies-api/internal/data/repository"
	"movies-api/internal/usecase"
	"movies-api/pkg/middleware"
	"movies-api/pkg/token"
	"movies-api/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the composed router and what main needs to run it
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
	Limiter *middleware.RateLimiter
}

// Wiring builds services, handlers and the route table
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	tokens := token.NewManager(config.JWT.Secret, config.JWT.Issuer, config.JWT.Expiry)
	service := usecase.NewService(repo, tokens, logger)
	handler := adaptor.NewHandler(service, logger, config.App.Debug)
	errs := middleware.NewErrorPipeline(logger, config.App.Debug)

	var limiter *middleware.RateLimiter
	if config.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(config.RateLimit.RPS, config.RateLimit.Burst, errs)
	}

	router := setupRouter(handler, service.Auth, errs, limiter, config, logger)

	return &App{
		Router:  router,
		Service: service,
		Limiter: limiter,
	}
}

// setupRouter registers middleware, routes, and the not-found/method handlers.
// The fallback handlers are set first so mounted sub-routers inherit them.
func setupRouter(
	handler *adaptor.Handler,
	verifier middleware.TokenVerifier,
	errs *middleware.ErrorPipeline,
	limiter *middleware.RateLimiter,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.NotFound(errs.NotFound)
	r.MethodNotAllowed(errs.MethodNotAllowed)

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger, errs))
	r.Use(middleware.CORS(config.CORS.AllowedOrigins))
	if limiter != nil {
		r.Use(limiter.Middleware)
	}

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Apply routes
	wireAuth(r, handler.Auth, errs)
	wireMovie(r, handler.Movie, verifier, errs)
	wireUserMovie(r, handler.UserMovie, verifier, errs)

	return r
}
