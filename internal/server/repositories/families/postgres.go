package families

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/shared"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Family, error) {
	query :=
		`SELECT id, name, created_by, created_at FROM families
		 WHERE id = $1
		 `

	family := &models.Family{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&family.ID, &family.Name, &family.CreatedBy, &family.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return family, nil
}
