// Package comments defines the storage contract for comments and their
// one-level reply threads.
package comments

import (
	"context"

	"github.com/heirloomhq/heirloom/internal/server/models"
)

type Repository interface {
	// Create assigns the id and timestamp. Content must already be sealed.
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)

	GetByID(ctx context.Context, id string) (*models.Comment, error)

	// GetByMemory returns top-level comments only; replies are excluded.
	GetByMemory(ctx context.Context, memoryID string) ([]*models.Comment, error)

	// GetReplies returns the direct replies of a comment.
	GetReplies(ctx context.Context, commentID string) ([]*models.Comment, error)

	Delete(ctx context.Context, id string) (bool, error)

	// ToggleReaction adds the (user, type) pair if absent, removes it if
	// present, and returns the updated comment.
	ToggleReaction(ctx context.Context, commentID, userID, userName, reactionType string) (*models.Comment, error)
}
