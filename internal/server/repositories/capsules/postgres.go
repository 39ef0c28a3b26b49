package capsules

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heirloomhq/heirloom/internal/dbx"
	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/shared"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const capsuleColumns = `id, family_id, created_by, title, message_encrypted, memory_ids,
	unlock_date, is_locked, recipients, created_at`

func (r *PostgresRepository) Create(ctx context.Context, capsule *models.TimeCapsule) (*models.TimeCapsule, error) {

	capsule.ID = uuid.NewString()
	capsule.CreatedAt = time.Now().UTC()
	capsule.IsLocked = true

	memoryIDs, err := json.Marshal(capsule.MemoryIDs)
	if err != nil {
		return nil, fmt.Errorf("encoding memory ids: %w", err)
	}
	recipients, err := json.Marshal(capsule.Recipients)
	if err != nil {
		return nil, fmt.Errorf("encoding recipients: %w", err)
	}

	query :=
		`INSERT INTO time_capsules (` + capsuleColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 `
	_, err = r.db.ExecContext(ctx, query,
		capsule.ID, capsule.FamilyID, capsule.CreatedBy, capsule.Title,
		capsule.MessageEncrypted, memoryIDs, capsule.UnlockDate,
		capsule.IsLocked, recipients, capsule.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.GetByID(ctx, capsule.ID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.TimeCapsule, error) {
	query := `SELECT ` + capsuleColumns + ` FROM time_capsules WHERE id = $1`
	return scanCapsule(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByFamily(ctx context.Context, familyID string) ([]*models.TimeCapsule, error) {
	query := `SELECT ` + capsuleColumns + ` FROM time_capsules WHERE family_id = $1`

	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.TimeCapsule
	for rows.Next() {
		c, err := scanCapsule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Unlock(ctx context.Context, id string) (*models.TimeCapsule, error) {

	var unlocked *models.TimeCapsule

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		query := `SELECT ` + capsuleColumns + ` FROM time_capsules WHERE id = $1 FOR UPDATE`
		capsule, err := scanCapsule(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			return err
		}

		if capsule.IsLocked {
			if when, ok := capsule.UnlockTime(); ok && time.Now().UTC().Before(when) {
				return shared.ErrorCapsuleLocked
			}

			if _, err := tx.ExecContext(ctx,
				`UPDATE time_capsules SET is_locked = FALSE WHERE id = $1`, id); err != nil {
				return fmt.Errorf("db error: %w", err)
			}
			capsule.IsLocked = false
		}

		unlocked = capsule
		return nil
	})
	if err != nil {
		return nil, err
	}

	return unlocked, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCapsule(row rowScanner) (*models.TimeCapsule, error) {
	c := &models.TimeCapsule{}
	var messageEnc sql.NullString
	var memoryIDs, recipients []byte

	err := row.Scan(&c.ID, &c.FamilyID, &c.CreatedBy, &c.Title, &messageEnc,
		&memoryIDs, &c.UnlockDate, &c.IsLocked, &recipients, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	c.MessageEncrypted = messageEnc.String

	if err := json.Unmarshal(memoryIDs, &c.MemoryIDs); err != nil {
		return nil, fmt.Errorf("decoding memory ids: %w", err)
	}
	if err := json.Unmarshal(recipients, &c.Recipients); err != nil {
		return nil, fmt.Errorf("decoding recipients: %w", err)
	}

	return c, nil
}
