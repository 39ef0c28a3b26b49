package services

import (
	"context"
	"fmt"

	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/server/repositories/repomanager"
	"github.com/heirloomhq/heirloom/internal/shared"
)

// HighlightService owns highlight reels. Nothing on a highlight is
// encrypted; views and shares are server-maintained counters.
type HighlightService struct {
	repomanager repomanager.RepositoryManager
}

func NewHighlightService(m repomanager.RepositoryManager) *HighlightService {
	return &HighlightService{repomanager: m}
}

func (s *HighlightService) Create(ctx context.Context, userID string, highlight *models.Highlight) (*models.Highlight, error) {

	user, err := familyOf(ctx, s.repomanager, userID)
	if err != nil {
		return nil, err
	}

	highlight.FamilyID = user.FamilyID

	created, err := s.repomanager.Highlights().Create(ctx, highlight)
	if err != nil {
		return nil, fmt.Errorf("error creating highlight: %w", err)
	}
	return created, nil
}

func (s *HighlightService) List(ctx context.Context, userID string) ([]*models.Highlight, error) {

	user, err := familyOf(ctx, s.repomanager, userID)
	if err != nil {
		return nil, err
	}

	return s.repomanager.Highlights().GetByFamily(ctx, user.FamilyID)
}

// View records one view and returns the updated highlight.
func (s *HighlightService) View(ctx context.Context, userID, highlightID string) (*models.Highlight, error) {

	if _, err := s.owned(ctx, userID, highlightID); err != nil {
		return nil, err
	}

	if err := s.repomanager.Highlights().IncrementViews(ctx, highlightID); err != nil {
		return nil, err
	}
	return s.repomanager.Highlights().GetByID(ctx, highlightID)
}

// Share records one share and returns the updated highlight.
func (s *HighlightService) Share(ctx context.Context, userID, highlightID string) (*models.Highlight, error) {

	if _, err := s.owned(ctx, userID, highlightID); err != nil {
		return nil, err
	}

	if err := s.repomanager.Highlights().IncrementShares(ctx, highlightID); err != nil {
		return nil, err
	}
	return s.repomanager.Highlights().GetByID(ctx, highlightID)
}

func (s *HighlightService) owned(ctx context.Context, userID, highlightID string) (*models.Highlight, error) {

	user, err := familyOf(ctx, s.repomanager, userID)
	if err != nil {
		return nil, err
	}

	highlight, err := s.repomanager.Highlights().GetByID(ctx, highlightID)
	if err != nil {
		return nil, err
	}
	if highlight.FamilyID != user.FamilyID {
		return nil, shared.ErrorAccessDenied
	}
	return highlight, nil
}
