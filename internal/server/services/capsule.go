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

// CapsuleService owns time capsules. The sealed message is only ever opened
// on an unlocked capsule; a locked capsule leaves with neither form present.
type CapsuleService struct {
	repomanager repomanager.RepositoryManager
	codec       *cryptox.Codec
}

func NewCapsuleService(m repomanager.RepositoryManager, codec *cryptox.Codec) *CapsuleService {
	return &CapsuleService{repomanager: m, codec: codec}
}

func (s *CapsuleService) Create(ctx context.Context, userID string, capsule *models.TimeCapsule) (*models.TimeCapsule, error) {

	user, err := familyOf(ctx, s.repomanager, userID)
	if err != nil {
		return nil, err
	}

	capsule.FamilyID = user.FamilyID
	capsule.CreatedBy = user.ID

	if err := fieldcrypt.SealCapsule(s.codec, capsule); err != nil {
		return nil, fmt.Errorf("error sealing capsule: %w", err)
	}

	created, err := s.repomanager.Capsules().Create(ctx, capsule)
	if err != nil {
		return nil, fmt.Errorf("error creating capsule: %w", err)
	}

	return s.reveal(created)
}

func (s *CapsuleService) Get(ctx context.Context, userID, capsuleID string) (*models.TimeCapsule, error) {

	capsule, err := s.owned(ctx, userID, capsuleID)
	if err != nil {
		return nil, err
	}
	return s.reveal(capsule)
}

func (s *CapsuleService) List(ctx context.Context, userID string) ([]*models.TimeCapsule, error) {

	user, err := familyOf(ctx, s.repomanager, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.repomanager.Capsules().GetByFamily(ctx, user.FamilyID)
	if err != nil {
		return nil, err
	}

	for i, capsule := range result {
		if result[i], err = s.reveal(capsule); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Unlock flips the capsule open once its unlock date has passed and returns
// it with the message decrypted.
func (s *CapsuleService) Unlock(ctx context.Context, userID, capsuleID string) (*models.TimeCapsule, error) {

	if _, err := s.owned(ctx, userID, capsuleID); err != nil {
		return nil, err
	}

	capsule, err := s.repomanager.Capsules().Unlock(ctx, capsuleID)
	if err != nil {
		return nil, err
	}
	return s.reveal(capsule)
}

// reveal opens the message on an unlocked capsule. On a locked one the
// ciphertext is stripped instead, so the caller sees neither form.
func (s *CapsuleService) reveal(capsule *models.TimeCapsule) (*models.TimeCapsule, error) {
	if capsule.IsLocked {
		capsule.MessageEncrypted = ""
		return capsule, nil
	}
	if err := fieldcrypt.OpenCapsule(s.codec, capsule); err != nil {
		return nil, err
	}
	return capsule, nil
}

func (s *CapsuleService) owned(ctx context.Context, userID, capsuleID string) (*models.TimeCapsule, error) {

	user, err := familyOf(ctx, s.repomanager, userID)
	if err != nil {
		return nil, err
	}

	capsule, err := s.repomanager.Capsules().GetByID(ctx, capsuleID)
	if err != nil {
		return nil, err
	}
	if capsule.FamilyID != user.FamilyID {
		return nil, shared.ErrorAccessDenied
	}
	return capsule, nil
}
