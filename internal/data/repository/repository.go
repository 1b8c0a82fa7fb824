package repository

import (
	"errors"

	"movies-api/pkg/database"

	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned by writes that matched no live row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("record already exists")
)

const uniqueViolation = "23505"

type Repository struct {
	User      UserRepository
	APIKey    APIKeyRepository
	Movie     MovieRepository
	UserMovie UserMovieRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:      NewUserRepository(db, log),
		APIKey:    NewAPIKeyRepository(db, log),
		Movie:     NewMovieRepository(db, log),
		UserMovie: NewUserMovieRepository(db, log),
	}
}
