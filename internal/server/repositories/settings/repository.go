// Package settings defines the storage contract for per-user notification
// settings, lazily created with fixed defaults.
package settings

import (
	"context"

	"github.com/heirloomhq/heirloom/internal/server/models"
)

type Repository interface {
	// GetOrCreateByUser returns the user's settings, creating the row with
	// defaults on first access.
	GetOrCreateByUser(ctx context.Context, userID string) (*models.NotificationSettings, error)

	Update(ctx context.Context, userID string, patch *models.NotificationSettingsPatch) (*models.NotificationSettings, error)
}
