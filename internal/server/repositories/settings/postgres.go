package settings

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

const settingsColumns = `id, user_id, weekly_digest, daily_reminders, new_comments, new_memories,
	birthdays, anniversaries, story_prompts, family_activity, email_notifications,
	push_notifications, created_at`

func (r *PostgresRepository) GetOrCreateByUser(ctx context.Context, userID string) (*models.NotificationSettings, error) {

	s, err := r.getByUser(ctx, r.db, userID)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, shared.ErrorNotFound) {
		return nil, err
	}

	defaults := models.DefaultNotificationSettings(userID)
	defaults.ID = uuid.NewString()
	defaults.CreatedAt = time.Now().UTC()

	// ON CONFLICT DO NOTHING keeps a concurrent first access from failing
	// on the user_id unique index; the follow-up read returns whichever row
	// won.
	query :=
		`INSERT INTO notification_settings (` + settingsColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (user_id) DO NOTHING
		 `
	if _, err := r.db.ExecContext(ctx, query,
		defaults.ID, defaults.UserID, defaults.WeeklyDigest, defaults.DailyReminders,
		defaults.NewComments, defaults.NewMemories, defaults.Birthdays, defaults.Anniversaries,
		defaults.StoryPrompts, defaults.FamilyActivity, defaults.EmailNotifications,
		defaults.PushNotifications, defaults.CreatedAt); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.getByUser(ctx, r.db, userID)
}

func (r *PostgresRepository) Update(ctx context.Context, userID string, patch *models.NotificationSettingsPatch) (*models.NotificationSettings, error) {

	// An update counts as first access: the row is created with defaults
	// before the patch lands.
	if _, err := r.GetOrCreateByUser(ctx, userID); err != nil {
		return nil, err
	}

	var updated *models.NotificationSettings

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		query := `SELECT ` + settingsColumns + ` FROM notification_settings WHERE user_id = $1 FOR UPDATE`
		s, err := scanSettings(tx.QueryRowContext(ctx, query, userID))
		if err != nil {
			return err
		}

		patch.Apply(s)

		update :=
			`UPDATE notification_settings
			 SET weekly_digest = $2, daily_reminders = $3, new_comments = $4, new_memories = $5,
			     birthdays = $6, anniversaries = $7, story_prompts = $8, family_activity = $9,
			     email_notifications = $10, push_notifications = $11
			 WHERE user_id = $1
			 `
		if _, err := tx.ExecContext(ctx, update,
			userID, s.WeeklyDigest, s.DailyReminders, s.NewComments, s.NewMemories,
			s.Birthdays, s.Anniversaries, s.StoryPrompts, s.FamilyActivity,
			s.EmailNotifications, s.PushNotifications); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *PostgresRepository) getByUser(ctx context.Context, db dbx.DBTX, userID string) (*models.NotificationSettings, error) {
	query := `SELECT ` + settingsColumns + ` FROM notification_settings WHERE user_id = $1`
	return scanSettings(db.QueryRowContext(ctx, query, userID))
}

func scanSettings(row *sql.Row) (*models.NotificationSettings, error) {
	s := &models.NotificationSettings{}
	err := row.Scan(&s.ID, &s.UserID, &s.WeeklyDigest, &s.DailyReminders,
		&s.NewComments, &s.NewMemories, &s.Birthdays, &s.Anniversaries,
		&s.StoryPrompts, &s.FamilyActivity, &s.EmailNotifications,
		&s.PushNotifications, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return s, nil
}
