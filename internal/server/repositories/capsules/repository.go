// Package capsules defines the storage contract for time capsules.
package capsules

import (
	"context"

	"github.com/heirloomhq/heirloom/internal/server/models"
)

type Repository interface {
	// Create assigns the id and creation timestamp and locks the capsule.
	// Message must already be sealed.
	Create(ctx context.Context, capsule *models.TimeCapsule) (*models.TimeCapsule, error)

	GetByID(ctx context.Context, id string) (*models.TimeCapsule, error)
	GetByFamily(ctx context.Context, familyID string) ([]*models.TimeCapsule, error)

	// Unlock flips IsLocked to false, once. It fails with
	// shared.ErrorCapsuleLocked while the unlock date is in the future and
	// succeeds idempotently on an already-unlocked capsule.
	Unlock(ctx context.Context, id string) (*models.TimeCapsule, error)
}
