// Package subscriptions defines the storage contract for the one-to-one
// user subscription record.
package subscriptions

import (
	"context"

	"github.com/heirloomhq/heirloom/internal/server/models"
)

type Repository interface {
	// Create assigns the id and creation timestamp. A second subscription
	// for the same user yields shared.ErrorDuplicateKey.
	Create(ctx context.Context, sub *models.Subscription) (*models.Subscription, error)

	GetByUser(ctx context.Context, userID string) (*models.Subscription, error)
	Update(ctx context.Context, userID string, patch *models.SubscriptionPatch) (*models.Subscription, error)
}
