package subscriptions

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

const subscriptionColumns = `id, user_id, plan, status, billing_customer_id,
	billing_subscription_id, cancel_at, current_period_end, created_at`

func (r *PostgresRepository) Create(ctx context.Context, sub *models.Subscription) (*models.Subscription, error) {

	sub.ID = uuid.NewString()
	sub.CreatedAt = time.Now().UTC()

	query :=
		`INSERT INTO subscriptions (` + subscriptionColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `
	_, err := r.db.ExecContext(ctx, query,
		sub.ID, sub.UserID, sub.Plan, sub.Status,
		nullableString(sub.BillingCustomerID), nullableString(sub.BillingSubscriptionID),
		sub.CancelAt, sub.CurrentPeriodEnd, sub.CreatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, shared.ErrorDuplicateKey
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.GetByUser(ctx, sub.UserID)
}

func (r *PostgresRepository) GetByUser(ctx context.Context, userID string) (*models.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1`
	return scanSubscription(r.db.QueryRowContext(ctx, query, userID))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) Update(ctx context.Context, userID string, patch *models.SubscriptionPatch) (*models.Subscription, error) {

	var updated *models.Subscription

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1 FOR UPDATE`
		sub, err := scanSubscription(tx.QueryRowContext(ctx, query, userID))
		if err != nil {
			return err
		}

		patch.Apply(sub)

		update :=
			`UPDATE subscriptions
			 SET plan = $2, status = $3, billing_customer_id = $4, billing_subscription_id = $5,
			     cancel_at = $6, current_period_end = $7
			 WHERE user_id = $1
			 `
		if _, err := tx.ExecContext(ctx, update,
			userID, sub.Plan, sub.Status,
			nullableString(sub.BillingCustomerID), nullableString(sub.BillingSubscriptionID),
			sub.CancelAt, sub.CurrentPeriodEnd); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		updated = sub
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func scanSubscription(row rowScanner) (*models.Subscription, error) {
	s := &models.Subscription{}
	var custID, subID sql.NullString
	var cancelAt, periodEnd sql.NullTime

	err := row.Scan(&s.ID, &s.UserID, &s.Plan, &s.Status, &custID, &subID,
		&cancelAt, &periodEnd, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	s.BillingCustomerID = custID.String
	s.BillingSubscriptionID = subID.String
	if cancelAt.Valid {
		t := cancelAt.Time
		s.CancelAt = &t
	}
	if periodEnd.Valid {
		t := periodEnd.Time
		s.CurrentPeriodEnd = &t
	}

	return s, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
