package inmemory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/shared"
)

type MemoryRepository struct {
	s *Store
}

func (r *MemoryRepository) Create(ctx context.Context, memory *models.Memory) (*models.Memory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	memory.ID = uuid.NewString()
	memory.CreatedAt = time.Now().UTC()

	r.s.memories[memory.ID] = cloneMemory(memory)
	return cloneMemory(memory), nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*models.Memory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	memory, ok := r.s.memories[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}
	return cloneMemory(memory), nil
}

func (r *MemoryRepository) GetByFamily(ctx context.Context, familyID string) ([]*models.Memory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// Full scan with an equality filter: fine for a fallback/dev backend.
	var result []*models.Memory
	for _, m := range r.s.memories {
		if m.FamilyID == familyID {
			result = append(result, cloneMemory(m))
		}
	}
	return result, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id string, patch *models.MemoryPatch) (*models.Memory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	memory, ok := r.s.memories[id]
	if !ok {
		return nil, shared.ErrorNotFound
	}

	patch.Apply(memory)
	return cloneMemory(memory), nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.memories[id]; !ok {
		return false, nil
	}

	// Known divergence from the relational backend: comments under this
	// memory are left in place.
	delete(r.s.memories, id)
	return true, nil
}
