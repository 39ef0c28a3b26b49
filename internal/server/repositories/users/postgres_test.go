package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heirloomhq/heirloom/internal/server/models"
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

func TestCreate_WithFamily(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)INSERT\s+INTO\s+families`).
		WithArgs(sqlmock.AnyArg(), "Smith", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`(?s)INSERT\s+INTO\s+users`).
		WithArgs(sqlmock.AnyArg(), "ann@example.com", "hash", "Ann",
			sqlmock.AnyArg(), "Smith", "free", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u := &models.User{Email: "ann@example.com", PasswordHash: "hash", Name: "Ann"}
	got, err := repo.Create(context.Background(), u, "Smith")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID == "" || got.FamilyID == "" || got.FamilyName != "Smith" {
		t.Fatalf("unexpected user: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_WithoutFamily(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)INSERT\s+INTO\s+users`).
		WithArgs(sqlmock.AnyArg(), "bob@example.com", "hash", "Bob",
			nil, nil, "free", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	u := &models.User{Email: "bob@example.com", PasswordHash: "hash", Name: "Bob"}
	got, err := repo.Create(context.Background(), u, "")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.FamilyID != "" {
		t.Fatalf("expected no family, got %q", got.FamilyID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)INSERT\s+INTO\s+users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	u := &models.User{Email: "ann@example.com", PasswordHash: "hash", Name: "Ann"}
	_, err := repo.Create(context.Background(), u, "")
	if !errors.Is(err, shared.ErrorDuplicateKey) {
		t.Fatalf("want shared.ErrorDuplicateKey, got %v", err)
	}
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "name",
		"family_id", "family_name", "package", "created_at"}).
		AddRow("u-1", "ann@example.com", "hash", "Ann", "f-1", "Smith", "premium", time.Now())
	mock.ExpectQuery(`(?s)SELECT\s+.*\s+FROM\s+users\s+WHERE\s+email`).
		WithArgs("ann@example.com").
		WillReturnRows(rows)

	got, err := repo.GetByEmail(context.Background(), "ann@example.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if got.ID != "u-1" || got.FamilyID != "f-1" || got.Package != models.TierPremium {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT\s+.*\s+FROM\s+users\s+WHERE\s+email`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, shared.ErrorNotFound) {
		t.Fatalf("want shared.ErrorNotFound, got %v", err)
	}
}

func TestGetByID_NullFamily(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "name",
		"family_id", "family_name", "package", "created_at"}).
		AddRow("u-2", "bob@example.com", "hash", "Bob", nil, nil, "free", time.Now())
	mock.ExpectQuery(`(?s)SELECT\s+.*\s+FROM\s+users\s+WHERE\s+id`).
		WithArgs("u-2").
		WillReturnRows(rows)

	got, err := repo.GetByID(context.Background(), "u-2")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.FamilyID != "" || got.FamilyName != "" {
		t.Fatalf("expected empty family fields, got %+v", got)
	}
}
