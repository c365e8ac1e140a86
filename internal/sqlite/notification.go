package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ganot/taskboard/internal/domain/notification"
	"github.com/ganot/taskboard/internal/repository"
)

// NotificationRepository implements notification.Repository for SQLite
type NotificationRepository struct {
	db *DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification
func (r *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	data := n.Data
	if data == nil {
		data = map[string]any{}
	}
	encoded, err := encodeJSON(data)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, actor_id, verb, data, channel, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, n.ID, n.UserID, nullableString(n.ActorID), n.Verb, encoded, n.Channel, n.Read, n.CreatedAt)
	if err != nil {
		if cerr := constraintError(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// Get retrieves a notification by ID
func (r *NotificationRepository) Get(ctx context.Context, id string) (*notification.Notification, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, actor_id, verb, data, channel, is_read, created_at
		FROM notifications
		WHERE id = ?
	`, id)
	n, err := scanNotification(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

// ListForUser returns a user's notifications newest first
func (r *NotificationRepository) ListForUser(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, actor_id, verb, data, channel, is_read, created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	list := []notification.Notification{}
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		list = append(list, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification rows: %w", err)
	}
	return list, nil
}

// MarkRead flags a user's notification as read
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanNotification(row rowScanner) (*notification.Notification, error) {
	var (
		n       notification.Notification
		actorID sql.NullString
		data    string
	)
	if err := row.Scan(&n.ID, &n.UserID, &actorID, &n.Verb, &data, &n.Channel, &n.Read, &n.CreatedAt); err != nil {
		return nil, err
	}
	if actorID.Valid {
		n.ActorID = &actorID.String
	}
	n.Data = map[string]any{}
	if data != "" {
		if err := json.Unmarshal([]byte(data), &n.Data); err != nil {
			return nil, fmt.Errorf("failed to decode notification data: %w", err)
		}
	}
	return &n, nil
}
