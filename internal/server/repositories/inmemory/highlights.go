package inmemory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/shared"
)

type HighlightRepository struct {
	s *Store
}

func (r *HighlightRepository) Create(ctx context.Context, highlight *models.Highlight) (*models.Highlight, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	highlight.ID = uuid.NewString()
	highlight.CreatedAt = time.Now().UTC()
	highlight.Views = 0
	highlight.Shares = 0

	r.s.highlights[highlight.ID] = cloneHighlight(highlight)
	return cloneHighlight(highlight), nil
}

func (r *HighlightRepository) GetByID(ctx context.Context, id string) (*models.Highlight, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	highlight, ok := r.s.highlights[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return cloneHighlight(highlight), nil
}

func (r *HighlightRepository) GetByFamily(ctx context.Context, familyID string) ([]*models.Highlight, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []*models.Highlight
	for _, h := range r.s.highlights {
		if h.FamilyID == familyID {
			result = append(result, cloneHighlight(h))
		}
	}
	return result, nil
}

func (r *HighlightRepository) IncrementViews(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	highlight, ok := r.s.highlights[id]
	if !ok {
		return shared.ErrorNotFound
	}
	highlight.Views++
	return nil
}

func (r *HighlightRepository) IncrementShares(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	highlight, ok := r.s.highlights[id]
	if !ok {
		return shared.ErrorNotFound
	}
	highlight.Shares++
	return nil
}
