package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/server/repositories/repomanager"
)

// ImportService tracks bulk imports. Counters are monotonic for the lifetime
// of a job and completion flips the status exactly once.
type ImportService struct {
	repomanager repomanager.RepositoryManager
}

func NewImportService(m repomanager.RepositoryManager) *ImportService {
	return &ImportService{repomanager: m}
}

// Start creates a job in the processing state.
func (s *ImportService) Start(ctx context.Context, userID, source string, settings json.RawMessage) (*models.ImportJob, error) {

	user, err := familyOf(ctx, s.repomanager, userID)
	if err != nil {
		return nil, err
	}

	job := &models.ImportJob{
		UserID:   user.ID,
		FamilyID: user.FamilyID,
		Source:   source,
		Settings: settings,
		Status:   models.ImportProcessing,
	}

	created, err := s.repomanager.ImportJobs().Create(ctx, job)
	if err != nil {
		return nil, fmt.Errorf("error creating import job: %w", err)
	}
	return created, nil
}

func (s *ImportService) Get(ctx context.Context, id string) (*models.ImportJob, error) {
	return s.repomanager.ImportJobs().GetByID(ctx, id)
}

func (s *ImportService) ListByUser(ctx context.Context, userID string) ([]*models.ImportJob, error) {
	return s.repomanager.ImportJobs().GetByUser(ctx, userID)
}

// Progress merges counter updates into the job. The storage layer rejects a
// regression of the processed or imported counters atomically with the write,
// so concurrent updates cannot land a regressed counter.
func (s *ImportService) Progress(ctx context.Context, id string, patch *models.ImportJobPatch) (*models.ImportJob, error) {
	return s.repomanager.ImportJobs().Update(ctx, id, patch)
}

// Complete flips the job to the complete state. Completing an already
// complete job returns it unchanged.
func (s *ImportService) Complete(ctx context.Context, id string) (*models.ImportJob, error) {

	job, err := s.repomanager.ImportJobs().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Status == models.ImportComplete {
		return job, nil
	}

	status := models.ImportComplete
	return s.repomanager.ImportJobs().Update(ctx, id, &models.ImportJobPatch{Status: &status})
}
