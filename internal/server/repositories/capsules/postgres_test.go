package capsules

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/heirloomhq/heirloom/internal/shared"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func capsuleRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "family_id", "created_by", "title",
		"message_encrypted", "memory_ids", "unlock_date", "is_locked",
		"recipients", "created_at"})
}

const selectForUpdate = `(?s)SELECT\s+.*\s+FROM\s+time_capsules\s+WHERE\s+id\s+=\s+\$1\s+FOR\s+UPDATE`

func TestUnlock_FutureDateRejected(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	future := time.Now().UTC().Add(24 * time.Hour).Format(time.RFC3339)

	mock.ExpectBegin()
	mock.ExpectQuery(selectForUpdate).
		WithArgs("tc-1").
		WillReturnRows(capsuleRows().AddRow("tc-1", "f-1", "u-1", "Later", "enc",
			[]byte(`[]`), future, true, []byte(`[]`), time.Now()))
	mock.ExpectRollback()

	_, err := repo.Unlock(context.Background(), "tc-1")
	if !errors.Is(err, shared.ErrorCapsuleLocked) {
		t.Fatalf("want shared.ErrorCapsuleLocked, got %v", err)
	}
}

func TestUnlock_PastDateFlips(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectForUpdate).
		WithArgs("tc-1").
		WillReturnRows(capsuleRows().AddRow("tc-1", "f-1", "u-1", "Now", "enc",
			[]byte(`[]`), "2020-01-01", true, []byte(`[]`), time.Now()))
	mock.ExpectExec(`(?s)UPDATE\s+time_capsules\s+SET\s+is_locked\s+=\s+FALSE`).
		WithArgs("tc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.Unlock(context.Background(), "tc-1")
	if err != nil {
		t.Fatalf("Unlock error: %v", err)
	}
	if got.IsLocked {
		t.Fatalf("capsule still locked: %+v", got)
	}
}

func TestUnlock_AlreadyUnlockedIsIdempotent(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectForUpdate).
		WithArgs("tc-1").
		WillReturnRows(capsuleRows().AddRow("tc-1", "f-1", "u-1", "Open", "enc",
			[]byte(`[]`), "2020-01-01", false, []byte(`[]`), time.Now()))
	mock.ExpectCommit()

	got, err := repo.Unlock(context.Background(), "tc-1")
	if err != nil {
		t.Fatalf("Unlock error: %v", err)
	}
	if got.IsLocked {
		t.Fatalf("capsule still locked: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected statements: %v", err)
	}
}

func TestUnlock_UnparseableDateUnlocks(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(selectForUpdate).
		WithArgs("tc-1").
		WillReturnRows(capsuleRows().AddRow("tc-1", "f-1", "u-1", "Odd", "enc",
			[]byte(`[]`), "someday", true, []byte(`[]`), time.Now()))
	mock.ExpectExec(`(?s)UPDATE\s+time_capsules\s+SET\s+is_locked\s+=\s+FALSE`).
		WithArgs("tc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := repo.Unlock(context.Background(), "tc-1")
	if err != nil {
		t.Fatalf("Unlock error: %v", err)
	}
	if got.IsLocked {
		t.Fatalf("capsule still locked: %+v", got)
	}
}
