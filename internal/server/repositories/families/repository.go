// Package families defines the read side of the family contract. Families
// are created through user registration, never directly.
package families

import (
	"context"

	"github.com/heirloomhq/heirloom/internal/server/models"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*models.Family, error)
}
