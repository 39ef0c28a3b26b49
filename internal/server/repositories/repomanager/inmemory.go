package repomanager

import (
	"context"
	"database/sql"

	"github.com/heirloomhq/heirloom/internal/server/repositories/capsules"
	"github.com/heirloomhq/heirloom/internal/server/repositories/comments"
	"github.com/heirloomhq/heirloom/internal/server/repositories/families"
	"github.com/heirloomhq/heirloom/internal/server/repositories/highlights"
	"github.com/heirloomhq/heirloom/internal/server/repositories/importjobs"
	"github.com/heirloomhq/heirloom/internal/server/repositories/inmemory"
	"github.com/heirloomhq/heirloom/internal/server/repositories/memories"
	"github.com/heirloomhq/heirloom/internal/server/repositories/settings"
	"github.com/heirloomhq/heirloom/internal/server/repositories/stories"
	"github.com/heirloomhq/heirloom/internal/server/repositories/subscriptions"
	"github.com/heirloomhq/heirloom/internal/server/repositories/users"
)

// InMemoryRepositoryManager vends repositories backed by one shared
// process-local store. State is lost on restart.
type InMemoryRepositoryManager struct {
	store *inmemory.Store
}

func NewInMemoryRepositoryManager() (*InMemoryRepositoryManager, error) {
	return &InMemoryRepositoryManager{store: inmemory.NewStore()}, nil
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.store.Users()
}

func (m *InMemoryRepositoryManager) Families() families.Repository {
	return m.store.Families()
}

func (m *InMemoryRepositoryManager) Memories() memories.Repository {
	return m.store.Memories()
}

func (m *InMemoryRepositoryManager) Comments() comments.Repository {
	return m.store.Comments()
}

func (m *InMemoryRepositoryManager) Stories() stories.Repository {
	return m.store.Stories()
}

func (m *InMemoryRepositoryManager) Highlights() highlights.Repository {
	return m.store.Highlights()
}

func (m *InMemoryRepositoryManager) Capsules() capsules.Repository {
	return m.store.Capsules()
}

func (m *InMemoryRepositoryManager) ImportJobs() importjobs.Repository {
	return m.store.ImportJobs()
}

func (m *InMemoryRepositoryManager) Settings() settings.Repository {
	return m.store.Settings()
}

func (m *InMemoryRepositoryManager) Subscriptions() subscriptions.Repository {
	return m.store.Subscriptions()
}

// RunMigrations is a no-op: the in-memory store has no schema.
func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return nil
}
