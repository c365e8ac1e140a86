package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/taskboard/internal/domain/chat"
	"github.com/ganot/taskboard/internal/repository"
)

// ChatRepository implements chat.Repository for SQLite
type ChatRepository struct {
	db *DB
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// CreateMessage inserts a project chat message. A missing project yields
// repository.ErrNotFound; a missing author a foreign key violation.
func (r *ChatRepository) CreateMessage(ctx context.Context, m *chat.Message) error {
	ok, err := projectExists(ctx, r.db, m.ProjectID)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO chat_messages (id, project_id, author_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.ProjectID, m.AuthorID, m.Content, m.Timestamp)
	if err != nil {
		if cerr := constraintError(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

// ListMessages returns the latest messages of a project oldest first
func (r *ChatRepository) ListMessages(ctx context.Context, projectID string, limit int) ([]chat.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, project_id, author_id, content, created_at FROM (
			SELECT id, project_id, author_id, content, created_at
			FROM chat_messages
			WHERE project_id = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		) ORDER BY created_at, id
	`, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	messages := []chat.Message{}
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.AuthorID, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating chat rows: %w", err)
	}
	return messages, nil
}

// CreateDirect inserts a direct message
func (r *ChatRepository) CreateDirect(ctx context.Context, m *chat.DirectMessage) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO direct_messages (id, sender_id, receiver_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, m.ID, m.SenderID, m.ReceiverID, m.Content, m.Timestamp)
	if err != nil {
		if cerr := constraintError(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("failed to create direct message: %w", err)
	}
	return nil
}

// ListConversation returns the latest messages between two users oldest first
func (r *ChatRepository) ListConversation(ctx context.Context, userA, userB string, limit int) ([]chat.DirectMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, content, created_at FROM (
			SELECT id, sender_id, receiver_id, content, created_at
			FROM direct_messages
			WHERE (sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		) ORDER BY created_at, id
	`, userA, userB, userB, userA, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list direct messages: %w", err)
	}
	return scanDirectMessages(rows)
}

// ListDirectForUser returns the latest messages sent or received by a user
// oldest first
func (r *ChatRepository) ListDirectForUser(ctx context.Context, userID string, limit int) ([]chat.DirectMessage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, content, created_at FROM (
			SELECT id, sender_id, receiver_id, content, created_at
			FROM direct_messages
			WHERE sender_id = ? OR receiver_id = ?
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		) ORDER BY created_at, id
	`, userID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list direct messages: %w", err)
	}
	return scanDirectMessages(rows)
}

func scanDirectMessages(rows *sql.Rows) ([]chat.DirectMessage, error) {
	defer rows.Close()

	messages := []chat.DirectMessage{}
	for rows.Next() {
		var m chat.DirectMessage
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Content, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan direct message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating direct message rows: %w", err)
	}
	return messages, nil
}
