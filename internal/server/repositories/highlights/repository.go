// Package highlights defines the storage contract for highlight reels.
package highlights

import (
	"context"

	"github.com/heirloomhq/heirloom/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, highlight *models.Highlight) (*models.Highlight, error)
	GetByID(ctx context.Context, id string) (*models.Highlight, error)
	GetByFamily(ctx context.Context, familyID string) ([]*models.Highlight, error)
	IncrementViews(ctx context.Context, id string) error
	IncrementShares(ctx context.Context, id string) error
}
