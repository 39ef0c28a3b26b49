package inmemory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/shared"
)

type SubRepository struct {
	s *Store
}

func (r *SubRepository) Create(ctx context.Context, sub *models.Subscription) (*models.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.subscriptions[sub.UserID]; ok {
		return nil, shared.ErrorDuplicateKey
	}

	sub.ID = uuid.NewString()
	sub.CreatedAt = time.Now().UTC()

	r.s.subscriptions[sub.UserID] = cloneSubscription(sub)
	return cloneSubscription(sub), nil
}

func (r *SubRepository) GetByUser(ctx context.Context, userID string) (*models.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sub, ok := r.s.subscriptions[userID]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return cloneSubscription(sub), nil
}

func (r *SubRepository) Update(ctx context.Context, userID string, patch *models.SubscriptionPatch) (*models.Subscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sub, ok := r.s.subscriptions[userID]
	if !ok {
		return nil, shared.ErrorNotFound
	}

	patch.Apply(sub)
	return cloneSubscription(sub), nil
}
