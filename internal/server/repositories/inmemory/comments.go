package inmemory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/shared"
)

type CommentRepository struct {
	s *Store
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comment.ID = uuid.NewString()
	comment.Timestamp = time.Now().UTC()
	if comment.UserAvatar == "" {
		comment.UserAvatar = models.AvatarInitials(comment.UserName)
	}
	if comment.Reactions == nil {
		comment.Reactions = []models.Reaction{}
	}

	r.s.comments[comment.ID] = cloneComment(comment)
	return cloneComment(comment), nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comment, ok := r.s.comments[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return cloneComment(comment), nil
}

func (r *CommentRepository) GetByMemory(ctx context.Context, memoryID string) ([]*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []*models.Comment
	for _, c := range r.s.comments {
		if c.MemoryID == memoryID && c.ReplyTo == "" {
			result = append(result, cloneComment(c))
		}
	}
	return result, nil
}

func (r *CommentRepository) GetReplies(ctx context.Context, commentID string) ([]*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []*models.Comment
	for _, c := range r.s.comments {
		if c.ReplyTo == commentID {
			result = append(result, cloneComment(c))
		}
	}
	return result, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[id]; !ok {
		return false, nil
	}
	delete(r.s.comments, id)
	return true, nil
}

func (r *CommentRepository) ToggleReaction(ctx context.Context, commentID, userID, userName, reactionType string) (*models.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	comment, ok := r.s.comments[commentID]
	if !ok {
		return nil, shared.ErrorNotFound
	}

	// Read-modify-write under the store lock; two concurrent toggles on the
	// same comment serialize here instead of losing an update.
	comment.Reactions = models.ToggleReaction(comment.Reactions, userID, userName, reactionType)
	return cloneComment(comment), nil
}
