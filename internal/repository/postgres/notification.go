package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Shefwef/ghuroo-api/internal/model"
	"github.com/Shefwef/ghuroo-api/internal/repository"
)

type notificationRepository struct {
	BaseRepository
}

func NewNotificationRepository(base BaseRepository) repository.NotificationRepository {
	return &notificationRepository{base}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) (err error) {
	defer func(start time.Time) { r.observe("notification_create", start, err) }(time.Now())

	query := `
		INSERT INTO notifications (
			id, recipient_id, title, message, type,
			reference_id, reference_model, is_read, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	n.ID = uuid.New()
	n.IsRead = false
	n.CreatedAt = time.Now()

	_, err = r.db.ExecContext(ctx, query,
		n.ID,
		n.RecipientID,
		n.Title,
		n.Message,
		n.Type,
		n.ReferenceID,
		n.ReferenceModel,
		n.IsRead,
		n.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}

	return nil
}

func (r *notificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, limit int) (notifications []*model.Notification, err error) {
	defer func(start time.Time) { r.observe("notification_list", start, err) }(time.Now())

	query := `
		SELECT * FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	notifications = []*model.Notification{}
	if err = r.db.SelectContext(ctx, &notifications, query, recipientID, limit); err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (count int64, err error) {
	defer func(start time.Time) { r.observe("notification_count_unread", start, err) }(time.Now())

	query := `
		SELECT COUNT(*) FROM notifications
		WHERE recipient_id = $1 AND is_read = false
	`

	if err = r.db.GetContext(ctx, &count, query, recipientID); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id uuid.UUID) (err error) {
	defer func(start time.Time) { r.observe("notification_mark_read", start, err) }(time.Now())

	query := `
		UPDATE notifications
		SET is_read = true
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) (rows int64, err error) {
	defer func(start time.Time) { r.observe("notification_mark_all_read", start, err) }(time.Now())

	query := `
		UPDATE notifications
		SET is_read = true
		WHERE recipient_id = $1 AND is_read = false
	`

	result, err := r.db.ExecContext(ctx, query, recipientID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	rows, err = result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}

func (r *notificationRepository) Get(ctx context.Context, id uuid.UUID) (n *model.Notification, err error) {
	defer func(start time.Time) { r.observe("notification_get", start, err) }(time.Now())

	query := `
		SELECT * FROM notifications
		WHERE id = $1
	`

	var row model.Notification
	if err = r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}

	return &row, nil
}

func (r *notificationRepository) Delete(ctx context.Context, id uuid.UUID) (err error) {
	defer func(start time.Time) { r.observe("notification_delete", start, err) }(time.Now())

	query := `
		DELETE FROM notifications
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *notificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (rows int64, err error) {
	defer func(start time.Time) { r.observe("notification_retention_delete", start, err) }(time.Now())

	query := `
		DELETE FROM notifications
		WHERE is_read = true AND created_at < $1
	`

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old notifications: %w", err)
	}

	rows, err = result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rows, nil
}
