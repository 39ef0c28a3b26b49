package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heirloomhq/heirloom/internal/dbx"
	"github.com/heirloomhq/heirloom/internal/server/models"
	"github.com/heirloomhq/heirloom/internal/shared"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User, familyName string) (*models.User, error) {

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	if user.Package == "" {
		user.Package = models.TierFree
	}

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		if familyName != "" {
			family := &models.Family{
				ID:        uuid.NewString(),
				Name:      familyName,
				CreatedBy: user.ID,
				CreatedAt: user.CreatedAt,
			}

			query :=
				`INSERT INTO families (id, name, created_by, created_at)
				 VALUES ($1, $2, $3, $4)
				 `
			if _, err := tx.ExecContext(ctx, query,
				family.ID, family.Name, family.CreatedBy, family.CreatedAt); err != nil {
				return fmt.Errorf("db error: %w", err)
			}

			user.FamilyID = family.ID
			user.FamilyName = family.Name
		}

		query :=
			`INSERT INTO users (id, email, password_hash, name, family_id, family_name, package, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 `
		if _, err := tx.ExecContext(ctx, query,
			user.ID, user.Email, user.PasswordHash, user.Name,
			nullable(user.FamilyID), nullable(user.FamilyName), string(user.Package), user.CreatedAt); err != nil {
			if dbx.IsUniqueViolation(err) {
				return shared.ErrorDuplicateKey
			}
			return fmt.Errorf("db error: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, name, family_id, family_name, package, created_at FROM users
		 WHERE email = $1
		 `
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query :=
		`SELECT id, email, password_hash, name, family_id, family_name, package, created_at FROM users
		 WHERE id = $1
		 `
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var familyID, familyName sql.NullString
	var pkg string

	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Name,
		&familyID, &familyName, &pkg, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.FamilyID = familyID.String
	user.FamilyName = familyName.String
	user.Package = models.PackageTier(pkg)
	return user, nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
