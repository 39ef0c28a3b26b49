package inmemory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/shared"
)

type CapsuleRepository struct {
	s *Store
}

func (r *CapsuleRepository) Create(ctx context.Context, capsule *models.TimeCapsule) (*models.TimeCapsule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	capsule.ID = uuid.NewString()
	capsule.CreatedAt = time.Now().UTC()
	capsule.IsLocked = true

	r.s.capsules[capsule.ID] = cloneCapsule(capsule)
	return cloneCapsule(capsule), nil
}

func (r *CapsuleRepository) GetByID(ctx context.Context, id string) (*models.TimeCapsule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	capsule, ok := r.s.capsules[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return cloneCapsule(capsule), nil
}

func (r *CapsuleRepository) GetByFamily(ctx context.Context, familyID string) ([]*models.TimeCapsule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []*models.TimeCapsule
	for _, c := range r.s.capsules {
		if c.FamilyID == familyID {
			result = append(result, cloneCapsule(c))
		}
	}
	return result, nil
}

func (r *CapsuleRepository) Unlock(ctx context.Context, id string) (*models.TimeCapsule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	capsule, ok := r.s.capsules[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}

	if capsule.IsLocked {
		if when, ok := capsule.UnlockTime(); ok && time.Now().UTC().Before(when) {
			return nil, shared.ErrorCapsuleLocked
		}
		capsule.IsLocked = false
	}

	return cloneCapsule(capsule), nil
}
