package response

import (
	"time"

	"movies-api/internal/data/entity"
)

type UserMovieResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MovieID   string    `json:"movieId"`
	CreatedAt time.Time `json:"createdAt"`
}

func UserMoviesToResponse(userMovies []*entity.UserMovie) []UserMovieResponse {
	out := make([]UserMovieResponse, len(userMovies))
	for i, userMovie := range userMovies {
		out[i] = UserMovieResponse{
			ID:        userMovie.ID.String(),
			UserID:    userMovie.UserID.String(),
			MovieID:   userMovie.MovieID.String(),
			CreatedAt: userMovie.CreatedAt,
		}
	}
	return out
}
