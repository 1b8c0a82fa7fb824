package repository

import (
	"context"
	"errors"
	"fmt"

	"movies-api/internal/data/entity"
	"movies-api/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type APIKeyRepository interface {
	Create(ctx context.Context, key *entity.APIKey) error
	FindByToken(ctx context.Context, token string) (*entity.APIKey, error)
}

type apiKeyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAPIKeyRepository(db database.PgxIface, log *zap.Logger) APIKeyRepository {
	return &apiKeyRepository{
		db:  db,
		log: log.With(zap.String("repository", "api_key")),
	}
}

func (r *apiKeyRepository) Create(ctx context.Context, key *entity.APIKey) error {
	query := `
		INSERT INTO api_keys (id, token, scopes, created_at)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := r.db.Exec(ctx, query, key.ID, key.Token, key.Scopes, key.CreatedAt); err != nil {
		r.log.Error("Failed to create api key", zap.Error(err))
		return fmt.Errorf("create api key: %w", err)
	}

	return nil
}

func (r *apiKeyRepository) FindByToken(ctx context.Context, token string) (*entity.APIKey, error) {
	query := `SELECT id, token, scopes, created_at FROM api_keys WHERE token = $1`

	var key entity.APIKey
	err := r.db.QueryRow(ctx, query, token).Scan(
		&key.ID,
		&key.Token,
		&key.Scopes,
		&key.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find api key", zap.Error(err))
		return nil, fmt.Errorf("find api key: %w", err)
	}

	return &key, nil
}
