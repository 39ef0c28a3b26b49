package importjobs

import (
	"context"
	"database/sql"
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

const jobColumns = `id, user_id, family_id, source, settings, total, processed, duplicates,
	imported, status, created_at`

func (r *PostgresRepository) Create(ctx context.Context, job *models.ImportJob) (*models.ImportJob, error) {

	job.ID = uuid.NewString()
	job.CreatedAt = time.Now().UTC()
	if job.Status == "" {
		job.Status = models.ImportIdle
	}
	if job.Settings == nil {
		job.Settings = []byte(`{}`)
	}

	query :=
		`INSERT INTO import_jobs (` + jobColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 `
	_, err := r.db.ExecContext(ctx, query,
		job.ID, job.UserID, job.FamilyID, job.Source, []byte(job.Settings),
		job.Total, job.Processed, job.Duplicates, job.Imported,
		string(job.Status), job.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.GetByID(ctx, job.ID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.ImportJob, error) {
	query := `SELECT ` + jobColumns + ` FROM import_jobs WHERE id = $1`
	return scanJob(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByUser(ctx context.Context, userID string) ([]*models.ImportJob, error) {
	query := `SELECT ` + jobColumns + ` FROM import_jobs WHERE user_id = $1`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.ImportJob
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id string, patch *models.ImportJobPatch) (*models.ImportJob, error) {

	var updated *models.ImportJob

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		query := `SELECT ` + jobColumns + ` FROM import_jobs WHERE id = $1 FOR UPDATE`
		job, err := scanJob(tx.QueryRowContext(ctx, query, id))
		if err != nil {
			return err
		}

		// The row is locked, so the regression check and the write are
		// atomic even under concurrent progress updates.
		if patch.Processed != nil && *patch.Processed < job.Processed {
			return shared.ErrorCounterRegression
		}
		if patch.Imported != nil && *patch.Imported < job.Imported {
			return shared.ErrorCounterRegression
		}

		patch.Apply(job)

		update :=
			`UPDATE import_jobs
			 SET total = $2, processed = $3, duplicates = $4, imported = $5, status = $6
			 WHERE id = $1
			 `
		if _, err := tx.ExecContext(ctx, update,
			job.ID, job.Total, job.Processed, job.Duplicates, job.Imported, string(job.Status)); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		updated = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*models.ImportJob, error) {
	j := &models.ImportJob{}
	var settings []byte
	var status string

	err := row.Scan(&j.ID, &j.UserID, &j.FamilyID, &j.Source, &settings,
		&j.Total, &j.Processed, &j.Duplicates, &j.Imported, &status, &j.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	j.Settings = settings
	j.Status = models.ImportStatus(status)
	return j, nil
}
