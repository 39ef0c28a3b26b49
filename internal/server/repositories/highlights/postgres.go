package highlights

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/shared"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const highlightColumns = `id, family_id, title, type, memory_ids, unlock_date, views, shares, created_at`

func (r *PostgresRepository) Create(ctx context.Context, highlight *models.Highlight) (*models.Highlight, error) {

	highlight.ID = uuid.NewString()
	highlight.CreatedAt = time.Now().UTC()
	highlight.Views = 0
	highlight.Shares = 0

	memoryIDs, err := json.Marshal(highlight.MemoryIDs)
	if err != nil {
		return nil, fmt.Errorf("encoding memory ids: %w", err)
	}

	query :=
		`INSERT INTO highlights (` + highlightColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `
	_, err = r.db.ExecContext(ctx, query,
		highlight.ID, highlight.FamilyID, highlight.Title, highlight.Type,
		memoryIDs, highlight.UnlockDate, highlight.Views, highlight.Shares, highlight.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.GetByID(ctx, highlight.ID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Highlight, error) {
	query := `SELECT ` + highlightColumns + ` FROM highlights WHERE id = $1`
	return scanHighlight(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByFamily(ctx context.Context, familyID string) ([]*models.Highlight, error) {
	query := `SELECT ` + highlightColumns + ` FROM highlights WHERE family_id = $1`

	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Highlight
	for rows.Next() {
		h, err := scanHighlight(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, id string) error {
	return r.increment(ctx, `UPDATE highlights SET views = views + 1 WHERE id = $1`, id)
}

func (r *PostgresRepository) IncrementShares(ctx context.Context, id string) error {
	return r.increment(ctx, `UPDATE highlights SET shares = shares + 1 WHERE id = $1`, id)
}

func (r *PostgresRepository) increment(ctx context.Context, query, id string) error {
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return shared.ErrorNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHighlight(row rowScanner) (*models.Highlight, error) {
	h := &models.Highlight{}
	var unlockDate sql.NullString
	var memoryIDs []byte

	err := row.Scan(&h.ID, &h.FamilyID, &h.Title, &h.Type, &memoryIDs,
		&unlockDate, &h.Views, &h.Shares, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	h.UnlockDate = unlockDate.String

	if err := json.Unmarshal(memoryIDs, &h.MemoryIDs); err != nil {
		return nil, fmt.Errorf("decoding memory ids: %w", err)
	}

	return h, nil
}
