package request

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// SignInRequest pairs Basic credentials with the API key that decides the scopes.
// Only APIKeyToken is read from the body.
type SignInRequest struct {
	Email       string `json:"-"`
	Password    string `json:"-"`
	APIKeyToken string `json:"apiKeyToken" validate:"required"`
}
