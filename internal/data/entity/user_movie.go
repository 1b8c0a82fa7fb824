package entity

import "github.com/google/uuid"

// UserMovie links a movie to the list of a user.
type UserMovie struct {
	BaseSimple
	UserID  uuid.UUID `db:"user_id"`
	MovieID uuid.UUID `db:"movie_id"`
}
