package request

type UserMovieListQuery struct {
	UserID string `query:"userId" validate:"required,uuid"`
}

// UserMovieIDParam validates the {userMovieId} path parameter.
type UserMovieIDParam struct {
	UserMovieID string `param:"userMovieId" validate:"required,uuid"`
}

type CreateUserMovieRequest struct {
	UserID  string `json:"userId" validate:"required,uuid"`
	MovieID string `json:"movieId" validate:"required,uuid"`
}
