package inmemory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/shared"
)

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, user *models.User, familyName string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.emailIndex[user.Email]; taken {
		return nil, shared.ErrorDuplicateKey
	}

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	if user.Package == "" {
		user.Package = models.TierFree
	}

	// Family and user land under one lock acquisition, mirroring the
	// relational backend's single transaction.
	if familyName != "" {
		family := &models.Family{
			ID:        uuid.NewString(),
			Name:      familyName,
			CreatedBy: user.ID,
			CreatedAt: user.CreatedAt,
		}
		r.s.families[family.ID] = family

		user.FamilyID = family.ID
		user.FamilyName = family.Name
	}

	r.s.users[user.ID] = cloneUser(user)
	r.s.emailIndex[user.Email] = user.ID

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.emailIndex[email]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return cloneUser(r.s.users[id]), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return cloneUser(user), nil
}

type FamilyRepository struct {
	s *Store
}

func (r *FamilyRepository) GetByID(ctx context.Context, id string) (*models.Family, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	family, ok := r.s.families[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return cloneFamily(family), nil
}
