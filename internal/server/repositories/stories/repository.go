// Package stories defines the storage contract for recorded stories.
package stories

import (
	"context"

	"github.com/heirloomhq/heirloom/internal/server/models"
)

type Repository interface {
	// Create assigns the id and creation timestamp. Transcript and location
	// must already be sealed.
	Create(ctx context.Context, story *models.Story) (*models.Story, error)

	GetByID(ctx context.Context, id string) (*models.Story, error)
	GetByFamily(ctx context.Context, familyID string) ([]*models.Story, error)
}
