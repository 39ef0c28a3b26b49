package comments

import (
	"context"
	"database/sql"
	"encoding/json"
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

const commentColumns = `id, memory_id, user_id, user_name, user_avatar, content_encrypted,
	timestamp, reactions, reply_to`

func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {

	comment.ID = uuid.NewString()
	comment.Timestamp = time.Now().UTC()
	if comment.UserAvatar == "" {
		comment.UserAvatar = models.AvatarInitials(comment.UserName)
	}
	if comment.Reactions == nil {
		comment.Reactions = []models.Reaction{}
	}

	reactions, err := json.Marshal(comment.Reactions)
	if err != nil {
		return nil, fmt.Errorf("encoding reactions: %w", err)
	}

	query :=
		`INSERT INTO comments (` + commentColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `
	_, err = r.db.ExecContext(ctx, query,
		comment.ID, comment.MemoryID, comment.UserID, comment.UserName, comment.UserAvatar,
		comment.ContentEncrypted, comment.Timestamp, reactions, nullableString(comment.ReplyTo))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.GetByID(ctx, comment.ID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`
	return scanComment(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByMemory(ctx context.Context, memoryID string) ([]*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE memory_id = $1 AND reply_to IS NULL`
	return r.queryComments(ctx, query, memoryID)
}

func (r *PostgresRepository) GetReplies(ctx context.Context, commentID string) ([]*models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE reply_to = $1`
	return r.queryComments(ctx, query, commentID)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}

func (r *PostgresRepository) ToggleReaction(ctx context.Context, commentID, userID, userName, reactionType string) (*models.Comment, error) {

	var updated *models.Comment

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {

		query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1 FOR UPDATE`
		comment, err := scanComment(tx.QueryRowContext(ctx, query, commentID))
		if err != nil {
			return err
		}

		comment.Reactions = models.ToggleReaction(comment.Reactions, userID, userName, reactionType)

		reactions, err := json.Marshal(comment.Reactions)
		if err != nil {
			return fmt.Errorf("encoding reactions: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE comments SET reactions = $2 WHERE id = $1`, commentID, reactions); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		updated = comment
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *PostgresRepository) queryComments(ctx context.Context, query string, arg any) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComment(row rowScanner) (*models.Comment, error) {
	c := &models.Comment{}
	var contentEnc, replyTo sql.NullString
	var reactions []byte

	err := row.Scan(&c.ID, &c.MemoryID, &c.UserID, &c.UserName, &c.UserAvatar,
		&contentEnc, &c.Timestamp, &reactions, &replyTo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	c.ContentEncrypted = contentEnc.String
	c.ReplyTo = replyTo.String

	if err := json.Unmarshal(reactions, &c.Reactions); err != nil {
		return nil, fmt.Errorf("decoding reactions: %w", err)
	}

	return c, nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
