package services

import (
	"context"
	"fmt"

	"github.com/heirloomhq/heirloom/internal/cryptox"
	"github.com/heirloomhq/heirloom/internal/server/fieldcrypt"
	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/server/repositories/repomanager"
	"github.com/heirloomhq/heirloom/internal/shared"
)

// CommentService owns comments and their one-level reply threads. Content is
// sealed before storage; author identity fields are denormalized from the
// user record at create time.
type CommentService struct {
	repomanager repomanager.RepositoryManager
	codec       *cryptox.Codec
}

func NewCommentService(m repomanager.RepositoryManager, codec *cryptox.Codec) *CommentService {
	return &CommentService{repomanager: m, codec: codec}
}

// Add creates a comment on a memory of the caller's family. When replyTo is
// non-empty the parent must be a top-level comment on the same memory.
func (s *CommentService) Add(ctx context.Context, userID, memoryID, content, replyTo string) (*models.Comment, error) {

	user, err := familyOf(ctx, s.repomanager, userID)
	if err != nil {
		return nil, err
	}

	memory, err := s.repomanager.Memories().GetByID(ctx, memoryID)
	if err != nil {
		return nil, err
	}
	if memory.FamilyID != user.FamilyID {
		return nil, shared.ErrorAccessDenied
	}

	if replyTo != "" {
		parent, err := s.repomanager.Comments().GetByID(ctx, replyTo)
		if err != nil {
			return nil, fmt.Errorf("error resolving parent comment: %w", err)
		}
		if parent.MemoryID != memoryID || parent.ReplyTo != "" {
			return nil, shared.ErrorNotFound
		}
	}

	comment := &models.Comment{
		MemoryID:   memoryID,
		UserID:     user.ID,
		UserName:   user.Name,
		UserAvatar: models.AvatarInitials(user.Name),
		Content:    content,
		ReplyTo:    replyTo,
	}

	if err := fieldcrypt.SealComment(s.codec, comment); err != nil {
		return nil, fmt.Errorf("error sealing comment: %w", err)
	}

	created, err := s.repomanager.Comments().Create(ctx, comment)
	if err != nil {
		return nil, fmt.Errorf("error creating comment: %w", err)
	}

	if err := fieldcrypt.OpenComment(s.codec, created); err != nil {
		return nil, err
	}
	return created, nil
}

// ownedMemory rejects callers whose family does not own the memory.
func (s *CommentService) ownedMemory(ctx context.Context, userID, memoryID string) error {

	user, err := familyOf(ctx, s.repomanager, userID)
	if err != nil {
		return err
	}

	memory, err := s.repomanager.Memories().GetByID(ctx, memoryID)
	if err != nil {
		return err
	}
	if memory.FamilyID != user.FamilyID {
		return shared.ErrorAccessDenied
	}
	return nil
}

// List returns the top-level comments of a memory, decrypted.
func (s *CommentService) List(ctx context.Context, userID, memoryID string) ([]*models.Comment, error) {

	if err := s.ownedMemory(ctx, userID, memoryID); err != nil {
		return nil, err
	}

	result, err := s.repomanager.Comments().GetByMemory(ctx, memoryID)
	if err != nil {
		return nil, err
	}

	for _, c := range result {
		if err := fieldcrypt.OpenComment(s.codec, c); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Replies returns the direct replies of a comment, decrypted. The parent
// comment's memory must belong to the caller's family.
func (s *CommentService) Replies(ctx context.Context, userID, commentID string) ([]*models.Comment, error) {

	parent, err := s.repomanager.Comments().GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := s.ownedMemory(ctx, userID, parent.MemoryID); err != nil {
		return nil, err
	}

	result, err := s.repomanager.Comments().GetReplies(ctx, commentID)
	if err != nil {
		return nil, err
	}

	for _, c := range result {
		if err := fieldcrypt.OpenComment(s.codec, c); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Delete removes a comment. Only its author may delete it.
func (s *CommentService) Delete(ctx context.Context, userID, commentID string) error {

	comment, err := s.repomanager.Comments().GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return shared.ErrorAccessDenied
	}

	deleted, err := s.repomanager.Comments().Delete(ctx, commentID)
	if err != nil {
		return err
	}
	if !deleted {
		return shared.ErrorNotFound
	}
	return nil
}

// ToggleReaction adds or removes the caller's reaction of the given type.
func (s *CommentService) ToggleReaction(ctx context.Context, userID, commentID, reactionType string) (*models.Comment, error) {

	user, err := s.repomanager.Users().GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment, err := s.repomanager.Comments().ToggleReaction(ctx, commentID, user.ID, user.Name, reactionType)
	if err != nil {
		return nil, err
	}

	if err := fieldcrypt.OpenComment(s.codec, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
