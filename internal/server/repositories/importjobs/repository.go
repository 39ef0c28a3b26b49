// Package importjobs defines the storage contract for bulk import jobs.
package importjobs

import (
	"context"

	"github.com/heirloomhq/heirloom/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, job *models.ImportJob) (*models.ImportJob, error)
	GetByID(ctx context.Context, id string) (*models.ImportJob, error)
	GetByUser(ctx context.Context, userID string) ([]*models.ImportJob, error)

	// Update merges the patch and returns the updated job. A patch that
	// would move the processed or imported counter backwards is rejected
	// with shared.ErrorCounterRegression, atomically with the write.
	Update(ctx context.Context, id string, patch *models.ImportJobPatch) (*models.ImportJob, error)
}
