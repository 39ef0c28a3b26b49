// Package services contains server-side business logic. Services are the
// only layer that touches the field codec: values are sealed before every
// storage call and opened after every read, so backends transport ciphertext
// only. Ownership checks live here too, keyed by the caller's family.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/server/repositories/repomanager"
	"github.com/heirloomhq/heirloom/internal/shared"
)

// UserService handles registration and user lookups. Password hashing is an
// external collaborator: the service stores whatever hash it is handed.
type UserService struct {
	repomanager repomanager.RepositoryManager
}

func NewUserService(m repomanager.RepositoryManager) *UserService {
	return &UserService{repomanager: m}
}

// Register creates a new user. When familyName is non-empty the family is
// created in the same atomic step. The pre-check keeps the common taken-email
// case off the constraint path; the repository still maps a constraint race
// to the same sentinel.
func (s *UserService) Register(ctx context.Context, email, passwordHash, name, familyName string) (*models.User, error) {

	repo := s.repomanager.Users()

	if _, err := repo.GetByEmail(ctx, email); err == nil {
		return nil, shared.ErrorDuplicateKey
	} else if !errors.Is(err, shared.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Package:      models.TierFree,
	}

	user, err := repo.Create(ctx, user, familyName)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repomanager.Users().GetByEmail(ctx, email)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users().GetByID(ctx, id)
}

// familyOf resolves the caller's family id, rejecting users that have not
// joined a family.
func familyOf(ctx context.Context, m repomanager.RepositoryManager, userID string) (*models.User, error) {
	user, err := m.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.FamilyID == "" {
		return nil, shared.ErrorAccessDenied
	}
	return user, nil
}
