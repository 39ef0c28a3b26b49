// Package memories defines the storage contract for memory records. The
// contract transports encrypted siblings byte-for-byte and never touches the
// codec.
package memories

import (
	"context"

	"github.com/heirloomhq/heirloom/internal/server/models"
)

type Repository interface {
	// Create assigns the id and creation timestamp. Description and location
	// must already be sealed by the caller.
	Create(ctx context.Context, memory *models.Memory) (*models.Memory, error)

	GetByID(ctx context.Context, id string) (*models.Memory, error)

	// GetByFamily filters strictly by family ownership. No ordering is
	// promised.
	GetByFamily(ctx context.Context, familyID string) ([]*models.Memory, error)

	// Update merges the patch key by key and returns the updated record, or
	// shared.ErrorNotFound for an unknown id.
	Update(ctx context.Context, id string, patch *models.MemoryPatch) (*models.Memory, error)

	// Delete reports whether a record was removed. The relational backend
	// cascades to comments; the in-memory backend does not.
	Delete(ctx context.Context, id string) (bool, error)
}
