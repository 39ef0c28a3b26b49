// Package users defines the storage contract for users and implements its
// relational backend. Registration with a family name creates the family and
// the user as one atomic step.
package users

import (
	"context"

	"github.com/heirloomhq/heirloom/internal/server/models"
)

type Repository interface {
	// Create assigns the id and creation timestamp, then persists the user.
	// When familyName is non-empty a Family owned by the new user is created
	// in the same atomic step and linked via FamilyID. A taken email yields
	// shared.ErrorDuplicateKey.
	Create(ctx context.Context, user *models.User, familyName string) (*models.User, error)

	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
