package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"

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

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewPostgresRepositoryManager_ReturnsInterface(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m, err := NewPostgresRepositoryManager(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var _ RepositoryManager = m
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := &PostgresRepositoryManager{db: db}

	var _ users.Repository = m.Users()
	var _ families.Repository = m.Families()
	var _ memories.Repository = m.Memories()
	var _ comments.Repository = m.Comments()
	var _ stories.Repository = m.Stories()
	var _ highlights.Repository = m.Highlights()
	var _ capsules.Repository = m.Capsules()
	var _ importjobs.Repository = m.ImportJobs()
	var _ settings.Repository = m.Settings()
	var _ subscriptions.Repository = m.Subscriptions()
}

func TestInMemoryManager_SatisfiesInterface(t *testing.T) {
	m, err := NewInMemoryRepositoryManager()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var _ RepositoryManager = m

	if err := m.RunMigrations(context.Background(), nil); err != nil {
		t.Fatalf("in-memory RunMigrations must be a no-op, got %v", err)
	}
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{db: db}
	if err := m.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{db: db}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}
