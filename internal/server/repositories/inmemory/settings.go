package inmemory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heirloomhq/heirloom/internal/server/models"
)

type SettingsRepository struct {
	s *Store
}

func (r *SettingsRepository) GetOrCreateByUser(ctx context.Context, userID string) (*models.NotificationSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return cloneSettings(r.getOrCreate(userID)), nil
}

func (r *SettingsRepository) Update(ctx context.Context, userID string, patch *models.NotificationSettingsPatch) (*models.NotificationSettings, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	s := r.getOrCreate(userID)
	patch.Apply(s)
	return cloneSettings(s), nil
}

// getOrCreate must be called with the store lock held.
func (r *SettingsRepository) getOrCreate(userID string) *models.NotificationSettings {
	if s, ok := r.s.settings[userID]; ok {
		return s
	}
	s := models.DefaultNotificationSettings(userID)
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()
	r.s.settings[userID] = s
	return s
}
