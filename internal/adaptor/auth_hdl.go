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

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// SignIn handles POST /api/auth/sign-in
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) error {
	req, ok := middleware.ValidatedFrom[request.SignInRequest](r.Context())
	if !ok {
		return apperr.BadRequest("missing sign in body")
	}

	email, password, ok := r.BasicAuth()
	if !ok || email == "" || password == "" {
		w.Header().Set("WWW-Authenticate", `Basic realm="movies-api"`)
		return apperr.Unauthorized("missing basic credentials")
	}
	req.Email = email
	req.Password = password

	resp, err := h.service.SignIn(r.Context(), req)
	if err != nil {
		return err
	}

	return utils.ResponseSuccess(w, "user signed in", resp)
}

// SignUp handles POST /api/auth/sign-up
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) error {
	req, ok := middleware.ValidatedFrom[request.SignUpRequest](r.Context())
	if !ok {
		return apperr.BadRequest("missing sign up body")
	}

	userID, err := h.service.SignUp(r.Context(), req)
	if err != nil {
		return err
	}

	return utils.ResponseCreated(w, utils.BuildMessage("user", "create"), userID)
}
