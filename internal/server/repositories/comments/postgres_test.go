package comments

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func commentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "memory_id", "user_id", "user_name",
		"user_avatar", "content_encrypted", "timestamp", "reactions", "reply_to"})
}

func TestToggleReaction_Adds(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT\s+.*\s+FROM\s+comments\s+WHERE\s+id\s+=\s+\$1\s+FOR\s+UPDATE`).
		WithArgs("c-1").
		WillReturnRows(commentRows().AddRow("c-1", "m-1", "u-1", "Ann", "AN",
			"enc", time.Now(), []byte(`[]`), nil))
	mock.ExpectExec(`(?s)UPDATE\s+comments\s+SET\s+reactions`).
		WithArgs("c-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.ToggleReaction(context.Background(), "c-1", "u-2", "Bob", "heart")
	if err != nil {
		t.Fatalf("ToggleReaction error: %v", err)
	}
	if len(got.Reactions) != 1 {
		t.Fatalf("want one reaction, got %v", got.Reactions)
	}
	r := got.Reactions[0]
	if r.Type != "heart" || r.UserID != "u-2" || r.UserName != "Bob" {
		t.Fatalf("unexpected reaction: %+v", r)
	}
}

func TestToggleReaction_RemovesExistingPair(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	stored := []byte(`[{"type":"heart","userId":"u-2","userName":"Bob"}]`)

	mock.ExpectBegin()
	mock.ExpectQuery(`(?s)SELECT\s+.*\s+FROM\s+comments\s+WHERE\s+id\s+=\s+\$1\s+FOR\s+UPDATE`).
		WithArgs("c-1").
		WillReturnRows(commentRows().AddRow("c-1", "m-1", "u-1", "Ann", "AN",
			"enc", time.Now(), stored, nil))
	mock.ExpectExec(`(?s)UPDATE\s+comments\s+SET\s+reactions`).
		WithArgs("c-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.ToggleReaction(context.Background(), "c-1", "u-2", "Bob", "heart")
	if err != nil {
		t.Fatalf("ToggleReaction error: %v", err)
	}
	if len(got.Reactions) != 0 {
		t.Fatalf("want reaction removed, got %v", got.Reactions)
	}
}

func TestGetByMemory_TopLevelOnly(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := commentRows().
		AddRow("c-1", "m-1", "u-1", "Ann", "AN", "enc", time.Now(), []byte(`[]`), nil)
	mock.ExpectQuery(`(?s)SELECT\s+.*\s+FROM\s+comments\s+WHERE\s+memory_id\s+=\s+\$1\s+AND\s+reply_to\s+IS\s+NULL`).
		WithArgs("m-1").
		WillReturnRows(rows)

	got, err := repo.GetByMemory(context.Background(), "m-1")
	if err != nil {
		t.Fatalf("GetByMemory error: %v", err)
	}
	if len(got) != 1 || got[0].ReplyTo != "" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestGetReplies(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := commentRows().
		AddRow("c-2", "m-1", "u-2", "Bob", "BO", "enc", time.Now(), []byte(`[]`), "c-1")
	mock.ExpectQuery(`(?s)SELECT\s+.*\s+FROM\s+comments\s+WHERE\s+reply_to\s+=\s+\$1`).
		WithArgs("c-1").
		WillReturnRows(rows)

	got, err := repo.GetReplies(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("GetReplies error: %v", err)
	}
	if len(got) != 1 || got[0].ReplyTo != "c-1" {
		t.Fatalf("unexpected result: %+v", got)
	}
}
