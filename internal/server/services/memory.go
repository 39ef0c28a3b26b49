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

// MemoryService owns the memory lifecycle: description and location are
// sealed before every write and opened after every read, and every operation
// checks that the caller's family owns the record.
type MemoryService struct {
	repomanager repomanager.RepositoryManager
	codec       *cryptox.Codec
}

func NewMemoryService(m repomanager.RepositoryManager, codec *cryptox.Codec) *MemoryService {
	return &MemoryService{repomanager: m, codec: codec}
}

// MemoryUpdate is the plaintext-facing partial update. Description and
// location are sealed here before the patch reaches a backend.
type MemoryUpdate struct {
	Title          *string
	Description    *string
	Location       *string
	Date           *string
	Type           *models.MemoryType
	Significance   *models.Significance
	Participants   *[]string
	Tags           *[]string
	Thumbnail      *string
	AIEnhanced     *bool
	IsVault        *bool
	SentimentScore *float64
	SentimentLabel *string
}

func (u *MemoryUpdate) seal(codec *cryptox.Codec) (*models.MemoryPatch, error) {
	patch := &models.MemoryPatch{
		Title:          u.Title,
		Date:           u.Date,
		Type:           u.Type,
		Significance:   u.Significance,
		Participants:   u.Participants,
		Tags:           u.Tags,
		Thumbnail:      u.Thumbnail,
		AIEnhanced:     u.AIEnhanced,
		IsVault:        u.IsVault,
		SentimentScore: u.SentimentScore,
		SentimentLabel: u.SentimentLabel,
	}

	if u.Description != nil {
		env, err := codec.Encrypt(*u.Description)
		if err != nil {
			return nil, err
		}
		patch.DescriptionEncrypted = &env
	}
	if u.Location != nil {
		env, err := codec.Encrypt(*u.Location)
		if err != nil {
			return nil, err
		}
		patch.LocationEncrypted = &env
	}

	return patch, nil
}

// Create stores a new memory under the caller's family.
func (s *MemoryService) Create(ctx context.Context, userID string, memory *models.Memory) (*models.Memory, error) {

	user, err := familyOf(ctx, s.repomanager, userID)
	if err != nil {
		return nil, err
	}

	memory.FamilyID = user.FamilyID
	memory.CreatedBy = user.ID

	if err := fieldcrypt.SealMemory(s.codec, memory); err != nil {
		return nil, fmt.Errorf("error sealing memory: %w", err)
	}

	created, err := s.repomanager.Memories().Create(ctx, memory)
	if err != nil {
		return nil, fmt.Errorf("error creating memory: %w", err)
	}

	if err := fieldcrypt.OpenMemory(s.codec, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Get returns a single memory, decrypted, after the ownership check.
func (s *MemoryService) Get(ctx context.Context, userID, memoryID string) (*models.Memory, error) {

	memory, err := s.owned(ctx, userID, memoryID)
	if err != nil {
		return nil, err
	}

	if err := fieldcrypt.OpenMemory(s.codec, memory); err != nil {
		return nil, err
	}
	return memory, nil
}

// List returns every memory of the caller's family, decrypted.
func (s *MemoryService) List(ctx context.Context, userID string) ([]*models.Memory, error) {

	user, err := familyOf(ctx, s.repomanager, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.repomanager.Memories().GetByFamily(ctx, user.FamilyID)
	if err != nil {
		return nil, err
	}

	for _, m := range result {
		if err := fieldcrypt.OpenMemory(s.codec, m); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (s *MemoryService) Update(ctx context.Context, userID, memoryID string, update *MemoryUpdate) (*models.Memory, error) {

	if _, err := s.owned(ctx, userID, memoryID); err != nil {
		return nil, err
	}

	patch, err := update.seal(s.codec)
	if err != nil {
		return nil, fmt.Errorf("error sealing update: %w", err)
	}

	updated, err := s.repomanager.Memories().Update(ctx, memoryID, patch)
	if err != nil {
		return nil, err
	}

	if err := fieldcrypt.OpenMemory(s.codec, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *MemoryService) Delete(ctx context.Context, userID, memoryID string) error {

	if _, err := s.owned(ctx, userID, memoryID); err != nil {
		return err
	}

	deleted, err := s.repomanager.Memories().Delete(ctx, memoryID)
	if err != nil {
		return err
	}
	if !deleted {
		return shared.ErrorNotFound
	}
	return nil
}

// owned fetches the memory and rejects callers outside its family.
func (s *MemoryService) owned(ctx context.Context, userID, memoryID string) (*models.Memory, error) {

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
	return memory, nil
}
