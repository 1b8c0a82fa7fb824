package request

// MovieIDParam validates the {movieId} path parameter.
type MovieIDParam struct {
	MovieID string `param:"movieId" validate:"required,uuid"`
}

type MovieListQuery struct {
	Tags []string `query:"tags" validate:"omitempty,dive,required,max=50"`
}

type CreateMovieRequest struct {
	Title         string   `json:"title" validate:"required,max=80"`
	Year          int      `json:"year" validate:"required,min=1888,max=2077"`
	Cover         string   `json:"cover" validate:"required,url"`
	Description   string   `json:"description" validate:"required,max=300"`
	Duration      int      `json:"duration" validate:"required,min=1,max=300"`
	ContentRating string   `json:"contentRating" validate:"required,max=5"`
	Source        string   `json:"source" validate:"required,url"`
	Tags          []string `json:"tags,omitempty" validate:"omitempty,dive,required,max=50"`
}

// UpdateMovieRequest only touches the fields that are present.
type UpdateMovieRequest struct {
	Title         *string   `json:"title,omitempty" validate:"omitempty,min=1,max=80"`
	Year          *int      `json:"year,omitempty" validate:"omitempty,min=1888,max=2077"`
	Cover         *string   `json:"cover,omitempty" validate:"omitempty,url"`
	Description   *string   `json:"description,omitempty" validate:"omitempty,min=1,max=300"`
	Duration      *int      `json:"duration,omitempty" validate:"omitempty,min=1,max=300"`
	ContentRating *string   `json:"contentRating,omitempty" validate:"omitempty,min=1,max=5"`
	Source        *string   `json:"source,omitempty" validate:"omitempty,url"`
	Tags          *[]string `json:"tags,omitempty" validate:"omitempty,dive,required,max=50"`
}
