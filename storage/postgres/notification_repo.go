package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"safetrack/pkg/logger"
	"safetrack/pkg/models"
	"safetrack/storage"
)

type notificationRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewNotificationRepo(db *pgxpool.Pool, log logger.ILogger) storage.INotificationStorage {
	return &notificationRepo{db: db, log: log}
}

func (r *notificationRepo) Create(ctx context.Context, userID uuid.UUID, message string) (*models.Notification, error) {
	var n models.Notification
	query := `
		INSERT INTO notifications (user_id, message, is_read)
		VALUES ($1, $2, FALSE)
		RETURNING id, user_id, message, is_read, created_at
	`
	err := r.db.QueryRow(ctx, query, userID, message).Scan(
		&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt,
	)
	if err != nil {
		r.log.Error("failed to create notification", logger.Error(err))
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	var n models.Notification
	query := `SELECT id, user_id, message, is_read, created_at FROM notifications WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.log.Error("failed to get notification by id", logger.Error(err))
		return nil, err
	}
	return &n, nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, page models.PageRequest) ([]*models.Notification, int64, error) {
	page = page.Normalize()

	var total int64
	if err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		r.log.Error("failed to count notifications", logger.Error(err))
		return nil, 0, err
	}

	query := `
		SELECT id, user_id, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, userID, page.Size, page.Offset())
	if err != nil {
		r.log.Error("failed to list notifications", logger.Error(err))
		return nil, 0, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, 0, err
		}
		notifications = append(notifications, &n)
	}
	return notifications, total, rows.Err()
}

func (r *notificationRepo) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID,
	).Scan(&count)
	if err != nil {
		r.log.Error("failed to count unread notifications", logger.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to mark notification read", logger.Error(err))
	}
	return err
}

// MarkAllRead flips every unread row for the user in one statement, so it
// cannot lose updates against concurrent MarkRead calls.
func (r *notificationRepo) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID,
	)
	if err != nil {
		r.log.Error("failed to mark all notifications read", logger.Error(err))
		return 0, err
	}
	return tag.RowsAffected(), nil
}
