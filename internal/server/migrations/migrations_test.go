package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// The schema sticks to portable DDL, so it can be smoke-tested against an
// embedded SQLite database without a running Postgres.
func TestMigrations_ApplyCleanly(t *testing.T) {

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrations.db"))
	if err != nil {
		t.Fatalf("sql.Open error: %v", err)
	}
	defer db.Close()

	goose.SetBaseFS(Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		t.Fatalf("SetDialect error: %v", err)
	}

	if err := goose.UpContext(context.Background(), db, "."); err != nil {
		t.Fatalf("UpContext error: %v", err)
	}

	for _, table := range []string{"users", "families", "memories", "comments",
		"stories", "highlights", "time_capsules", "import_jobs",
		"notification_settings", "subscriptions"} {
		var name string
		err := db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing after migration: %v", table, err)
		}
	}

	if err := goose.DownContext(context.Background(), db, "."); err != nil {
		t.Fatalf("DownContext error: %v", err)
	}
}
