package services

import (
	"context"
	"fmt"

	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/server/repositories/repomanager"
)

// AccountService owns the per-user account surface: lazily created
// notification settings and the one-to-one subscription record.
type AccountService struct {
	repomanager repomanager.RepositoryManager
}

func NewAccountService(m repomanager.RepositoryManager) *AccountService {
	return &AccountService{repomanager: m}
}

// Settings returns the user's notification settings, creating them with
// defaults on first access.
func (s *AccountService) Settings(ctx context.Context, userID string) (*models.NotificationSettings, error) {
	return s.repomanager.Settings().GetOrCreateByUser(ctx, userID)
}

func (s *AccountService) UpdateSettings(ctx context.Context, userID string, patch *models.NotificationSettingsPatch) (*models.NotificationSettings, error) {
	return s.repomanager.Settings().Update(ctx, userID, patch)
}

// Subscribe creates the user's subscription record.
func (s *AccountService) Subscribe(ctx context.Context, userID string, sub *models.Subscription) (*models.Subscription, error) {

	sub.UserID = userID

	created, err := s.repomanager.Subscriptions().Create(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("error creating subscription: %w", err)
	}
	return created, nil
}

func (s *AccountService) Subscription(ctx context.Context, userID string) (*models.Subscription, error) {
	return s.repomanager.Subscriptions().GetByUser(ctx, userID)
}

func (s *AccountService) UpdateSubscription(ctx context.Context, userID string, patch *models.SubscriptionPatch) (*models.Subscription, error) {
	return s.repomanager.Subscriptions().Update(ctx, userID, patch)
}
