package response

import (
	"time"

	"movies-api/internal/data/entity"
)

type MovieResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Year          int       `json:"year"`
	Cover         string    `json:"cover"`
	Description   string    `json:"description"`
	Duration      int       `json:"duration"`
	ContentRating string    `json:"contentRating"`
	Source        string    `json:"source"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	tags := movie.Tags
	if tags == nil {
		tags = []string{}
	}

	return MovieResponse{
		ID:            movie.ID.String(),
		Title:         movie.Title,
		Year:          movie.Year,
		Cover:         movie.Cover,
		Description:   movie.Description,
		Duration:      movie.Duration,
		ContentRating: movie.ContentRating,
		Source:        movie.Source,
		Tags:          tags,
		CreatedAt:     movie.CreatedAt,
		UpdatedAt:     movie.UpdatedAt,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	out := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		out[i] = MovieToResponse(movie)
	}
	return out
}
