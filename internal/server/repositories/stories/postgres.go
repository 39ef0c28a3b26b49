package stories

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

const storyColumns = `id, family_id, created_by, title, transcript_encrypted, location_encrypted,
	date, duration, prompt, participants, created_at`

func (r *PostgresRepository) Create(ctx context.Context, story *models.Story) (*models.Story, error) {

	story.ID = uuid.NewString()
	story.CreatedAt = time.Now().UTC()

	participants, err := json.Marshal(story.Participants)
	if err != nil {
		return nil, fmt.Errorf("encoding participants: %w", err)
	}

	query :=
		`INSERT INTO stories (` + storyColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 `
	_, err = r.db.ExecContext(ctx, query,
		story.ID, story.FamilyID, story.CreatedBy, story.Title,
		story.TranscriptEncrypted, story.LocationEncrypted,
		story.Date, story.Duration, story.Prompt, participants, story.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.GetByID(ctx, story.ID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE id = $1`
	return scanStory(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByFamily(ctx context.Context, familyID string) ([]*models.Story, error) {
	query := `SELECT ` + storyColumns + ` FROM stories WHERE family_id = $1`

	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStory(row rowScanner) (*models.Story, error) {
	s := &models.Story{}
	var transcriptEnc, locationEnc sql.NullString
	var participants []byte

	err := row.Scan(&s.ID, &s.FamilyID, &s.CreatedBy, &s.Title,
		&transcriptEnc, &locationEnc, &s.Date, &s.Duration, &s.Prompt,
		&participants, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	s.TranscriptEncrypted = transcriptEnc.String
	s.LocationEncrypted = locationEnc.String

	if err := json.Unmarshal(participants, &s.Participants); err != nil {
		return nil, fmt.Errorf("decoding participants: %w", err)
	}

	return s, nil
}
