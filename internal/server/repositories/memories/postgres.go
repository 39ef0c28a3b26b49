package memories

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

const memoryColumns = `id, family_id, created_by, title, description_encrypted, location_encrypted,
	date, type, significance, participants, tags, thumbnail, ai_enhanced, is_vault,
	sentiment_score, sentiment_label, created_at`

func (r *PostgresRepository) Create(ctx context.Context, memory *models.Memory) (*models.Memory, error) {

	memory.ID = uuid.NewString()
	memory.CreatedAt = time.Now().UTC()

	participants, err := json.Marshal(memory.Participants)
	if err != nil {
		return nil, fmt.Errorf("encoding participants: %w", err)
	}
	tags, err := json.Marshal(memory.Tags)
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}

	query :=
		`INSERT INTO memories (` + memoryColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 `
	_, err = r.db.ExecContext(ctx, query,
		memory.ID, memory.FamilyID, memory.CreatedBy, memory.Title,
		memory.DescriptionEncrypted, memory.LocationEncrypted,
		memory.Date, string(memory.Type), string(memory.Significance),
		participants, tags, memory.Thumbnail, memory.AIEnhanced, memory.IsVault,
		memory.SentimentScore, memory.SentimentLabel, memory.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	// Round-trip through the store so the caller sees exactly what was
	// persisted, server-assigned defaults included.
	return r.GetByID(ctx, memory.ID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Memory, error) {
	query := `SELECT ` + memoryColumns + ` FROM memories WHERE id = $1`
	return scanMemory(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByFamily(ctx context.Context, familyID string) ([]*models.Memory, error) {
	query := `SELECT ` + memoryColumns + ` FROM memories WHERE family_id = $1`

	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Memory
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch *models.MemoryPatch) (*models.Memory, error) {

	var updated *models.Memory

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		query := `SELECT ` + memoryColumns + ` FROM memories WHERE id = $1 FOR UPDATE`
		memory, err := scanMemory(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			return err
		}

		patch.Apply(memory)

		participants, err := json.Marshal(memory.Participants)
		if err != nil {
			return fmt.Errorf("encoding participants: %w", err)
		}
		tags, err := json.Marshal(memory.Tags)
		if err != nil {
			return fmt.Errorf("encoding tags: %w", err)
		}

		update :=
			`UPDATE memories
			 SET title = $2, description_encrypted = $3, location_encrypted = $4, date = $5,
			     type = $6, significance = $7, participants = $8, tags = $9, thumbnail = $10,
			     ai_enhanced = $11, is_vault = $12, sentiment_score = $13, sentiment_label = $14
			 WHERE id = $1
			 `
		if _, err := tx.ExecContext(ctx, update,
			memory.ID, memory.Title, memory.DescriptionEncrypted, memory.LocationEncrypted,
			memory.Date, string(memory.Type), string(memory.Significance),
			participants, tags, memory.Thumbnail, memory.AIEnhanced, memory.IsVault,
			memory.SentimentScore, memory.SentimentLabel); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		updated = memory
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	// comments.memory_id is ON DELETE CASCADE; dependent rows go with the
	// memory at the constraint level.
	res, err := r.db.ExecContext(ctx, `DELETE FROM memories WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMemory(row rowScanner) (*models.Memory, error) {
	m := &models.Memory{}
	var descEnc, locEnc, thumbnail, sentimentLabel sql.NullString
	var participants, tags []byte
	var typ, significance string

	err := row.Scan(&m.ID, &m.FamilyID, &m.CreatedBy, &m.Title, &descEnc, &locEnc,
		&m.Date, &typ, &significance, &participants, &tags, &thumbnail,
		&m.AIEnhanced, &m.IsVault, &m.SentimentScore, &sentimentLabel, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	m.DescriptionEncrypted = descEnc.String
	m.LocationEncrypted = locEnc.String
	m.Thumbnail = thumbnail.String
	m.SentimentLabel = sentimentLabel.String
	m.Type = models.MemoryType(typ)
	m.Significance = models.Significance(significance)

	if err := json.Unmarshal(participants, &m.Participants); err != nil {
		return nil, fmt.Errorf("decoding participants: %w", err)
	}
	if err := json.Unmarshal(tags, &m.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}

	return m, nil
}
