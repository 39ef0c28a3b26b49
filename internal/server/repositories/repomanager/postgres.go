package repomanager

import (
	"context"
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/heirloomhq/heirloom/internal/server/migrations"
	"github.com/heirloomhq/heirloom/internal/server/repositories/capsules"
	"github.com/heirloomhq/heirloom/internal/server/repositories/comments"
	"github.com/heirloomhq/heirloom/internal/server/repositories/families"
	"github.com/heirloomhq/heirloom/internal/server/repositories/highlights"
	"github.com/heirloomhq/heirloom/internal/server/repositories/importjobs"
	"github.com/heirloomhq/heirloom/internal/server/repositories/memories"
	"github.com/heirloomhq/heirloom/internal/server/repositories/settings"
	"github.com/heirloomhq/heirloom/internal/server/repositories/stories"
	"github.com/heirloomhq/heirloom/internal/server/repositories/subscriptions"
	"github.com/heirloomhq/heirloom/internal/server/repositories/users"
)

// PostgresRepositoryManager vends PostgreSQL-backed repositories bound to a
// single shared connection pool, and exposes a schema migration hook.
type PostgresRepositoryManager struct {
	db *sql.DB
}

func NewPostgresRepositoryManager(db *sql.DB) (*PostgresRepositoryManager, error) {
	return &PostgresRepositoryManager{db: db}, nil
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return users.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Families() families.Repository {
	return families.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Memories() memories.Repository {
	return memories.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Comments() comments.Repository {
	return comments.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Stories() stories.Repository {
	return stories.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Highlights() highlights.Repository {
	return highlights.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Capsules() capsules.Repository {
	return capsules.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) ImportJobs() importjobs.Repository {
	return importjobs.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Settings() settings.Repository {
	return settings.NewPostgresRepository(m.db)
}

func (m *PostgresRepositoryManager) Subscriptions() subscriptions.Repository {
	return subscriptions.NewPostgresRepository(m.db)
}

// gooseUpContext is a seam for testing RunMigrations.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations points goose at the embedded migration files and applies
// anything outstanding.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}

	return nil
}
