package inmemory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/shared"
)

type ImportJobRepository struct {
	s *Store
}

func (r *ImportJobRepository) Create(ctx context.Context, job *models.ImportJob) (*models.ImportJob, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	job.ID = uuid.NewString()
	job.CreatedAt = time.Now().UTC()
	if job.Status == "" {
		job.Status = models.ImportIdle
	}
	if job.Settings == nil {
		job.Settings = []byte(`{}`)
	}

	r.s.importJobs[job.ID] = cloneImportJob(job)
	return cloneImportJob(job), nil
}

func (r *ImportJobRepository) GetByID(ctx context.Context, id string) (*models.ImportJob, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	job, ok := r.s.importJobs[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return cloneImportJob(job), nil
}

func (r *ImportJobRepository) GetByUser(ctx context.Context, userID string) ([]*models.ImportJob, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []*models.ImportJob
	for _, j := range r.s.importJobs {
		if j.UserID == userID {
			result = append(result, cloneImportJob(j))
		}
	}
	return result, nil
}

func (r *ImportJobRepository) Update(ctx context.Context, id string, patch *models.ImportJobPatch) (*models.ImportJob, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	job, ok := r.s.importJobs[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}

	// Checked under the store lock so concurrent progress updates cannot
	// land a regressed counter.
	if patch.Processed != nil && *patch.Processed < job.Processed {
		return nil, shared.ErrorCounterRegression
	}
	if patch.Imported != nil && *patch.Imported < job.Imported {
		return nil, shared.ErrorCounterRegression
	}

	patch.Apply(job)
	return cloneImportJob(job), nil
}
