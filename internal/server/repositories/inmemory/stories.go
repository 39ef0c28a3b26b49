package inmemory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/shared"
)

type StoryRepository struct {
	s *Store
}

func (r *StoryRepository) Create(ctx context.Context, story *models.Story) (*models.Story, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	story.ID = uuid.NewString()
	story.CreatedAt = time.Now().UTC()

	r.s.stories[story.ID] = cloneStory(story)
	return cloneStory(story), nil
}

func (r *StoryRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	story, ok := r.s.stories[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return cloneStory(story), nil
}

func (r *StoryRepository) GetByFamily(ctx context.Context, familyID string) ([]*models.Story, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var result []*models.Story
	for _, st := range r.s.stories {
		if st.FamilyID == familyID {
			result = append(result, cloneStory(st))
		}
	}
	return result, nil
}
