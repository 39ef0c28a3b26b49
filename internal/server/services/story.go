package services

import (
	"context"
	"fmt"
	"time"

	"github.com/heirloomhq/heirloom/internal/cryptox"
	"github.com/heirloomhq/heirloom/internal/server/fieldcrypt"
	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/server/repositories/repomanager"
	"github.com/heirloomhq/heirloom/internal/shared"
)

// StoryService owns recorded stories. Transcript and location are sealed
// before storage.
type StoryService struct {
	repomanager repomanager.RepositoryManager
	codec       *cryptox.Codec
}

func NewStoryService(m repomanager.RepositoryManager, codec *cryptox.Codec) *StoryService {
	return &StoryService{repomanager: m, codec: codec}
}

// Create stores a new story under the caller's family. The story stamps its
// own date.
func (s *StoryService) Create(ctx context.Context, userID string, story *models.Story) (*models.Story, error) {

	user, err := familyOf(ctx, s.repomanager, userID)
	if err != nil {
		return nil, err
	}

	story.FamilyID = user.FamilyID
	story.CreatedBy = user.ID
	story.Date = time.Now().UTC().Format(time.RFC3339)

	if err := fieldcrypt.SealStory(s.codec, story); err != nil {
		return nil, fmt.Errorf("error sealing story: %w", err)
	}

	created, err := s.repomanager.Stories().Create(ctx, story)
	if err != nil {
		return nil, fmt.Errorf("error creating story: %w", err)
	}

	if err := fieldcrypt.OpenStory(s.codec, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (s *StoryService) Get(ctx context.Context, userID, storyID string) (*models.Story, error) {

	user, err := familyOf(ctx, s.repomanager, userID)
	if err != nil {
		return nil, err
	}

	story, err := s.repomanager.Stories().GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.FamilyID != user.FamilyID {
		return nil, shared.ErrorAccessDenied
	}

	if err := fieldcrypt.OpenStory(s.codec, story); err != nil {
		return nil, err
	}
	return story, nil
}

func (s *StoryService) List(ctx context.Context, userID string) ([]*models.Story, error) {

	user, err := familyOf(ctx, s.repomanager, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.repomanager.Stories().GetByFamily(ctx, user.FamilyID)
	if err != nil {
		return nil, err
	}

	for _, story := range result {
		if err := fieldcrypt.OpenStory(s.codec, story); err != nil {
			return nil, err
		}
	}
	return result, nil
}
