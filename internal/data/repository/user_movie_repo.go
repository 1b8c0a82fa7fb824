package repository

import (
	"context"
	"errors"
	"fmt"

	"movies-api/internal/data/entity"
	"movies-api/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type UserMovieRepository interface {
	Create(ctx context.Context, userMovie *entity.UserMovie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UserMovie, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserMovie, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userMovieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUserMovieRepository(db database.PgxIface, log *zap.Logger) UserMovieRepository {
	return &userMovieRepository{
		db:  db,
		log: log.With(zap.String("repository", "user_movie")),
	}
}

// Create returns ErrDuplicate when the movie is already in the user's list.
func (r *userMovieRepository) Create(ctx context.Context, userMovie *entity.UserMovie) error {
	query := `
		INSERT INTO user_movies (id, user_id, movie_id, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		userMovie.ID,
		userMovie.UserID,
		userMovie.MovieID,
		userMovie.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicate
		}

		r.log.Error("Failed to create user movie",
			zap.Error(err),
			zap.String("user_id", userMovie.UserID.String()),
			zap.String("movie_id", userMovie.MovieID.String()),
		)
		return fmt.Errorf("failed to create user movie: %w", err)
	}

	return nil
}

func (r *userMovieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UserMovie, error) {
	query := `SELECT id, user_id, movie_id, created_at FROM user_movies WHERE id = $1`

	userMovie, err := scanUserMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find user movie by ID",
			zap.Error(err),
			zap.String("user_movie_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find user movie: %w", err)
	}

	return userMovie, nil
}

func (r *userMovieRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserMovie, error) {
	query := `
		SELECT id, user_id, movie_id, created_at
		FROM user_movies
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find user movies",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("failed to find user movies: %w", err)
	}
	defer rows.Close()

	userMovies := []*entity.UserMovie{}
	for rows.Next() {
		userMovie, err := scanUserMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user movie: %w", err)
		}
		userMovies = append(userMovies, userMovie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return userMovies, nil
}

func (r *userMovieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM user_movies WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete user movie",
			zap.Error(err),
			zap.String("user_movie_id", id.String()),
		)
		return fmt.Errorf("failed to delete user movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func scanUserMovie(row pgx.Row) (*entity.UserMovie, error) {
	var userMovie entity.UserMovie
	if err := row.Scan(
		&userMovie.ID,
		&userMovie.UserID,
		&userMovie.MovieID,
		&userMovie.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &userMovie, nil
}
