package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganot/taskboard/internal/repository"
	"github.com/google/uuid"
)

const defaultLimit = 200

// Service handles project chat and direct messages.
type Service struct {
	repo   Repository
	events Publisher
	logger *slog.Logger
}

// NewService creates a new chat service. events may be nil.
func NewService(repo Repository, events Publisher, logger *slog.Logger) *Service {
	return &Service{repo: repo, events: events, logger: logger}
}

// Post adds a message to a project's chat.
func (s *Service) Post(ctx context.Context, authorID, projectID, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	m := &Message{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		AuthorID:  authorID,
		Content:   content,
		Timestamp: time.Now(),
	}
	if err := s.repo.CreateMessage(ctx, m); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrProjectNotFound
		case errors.Is(err, repository.ErrForeignKeyViolation):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("creating chat message: %w", err)
	}
	if s.events != nil {
		s.events.Publish(projectID, EventChatMessage, m)
	}
	return m, nil
}

// List returns a project's most recent messages oldest first.
func (s *Service) List(ctx context.Context, projectID string, limit int) ([]Message, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.repo.ListMessages(ctx, projectID, limit)
}

// Send delivers a direct message from senderID to receiverID.
func (s *Service) Send(ctx context.Context, senderID, receiverID, content string) (*DirectMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if strings.TrimSpace(receiverID) == "" {
		return nil, ErrUserNotFound
	}
	m := &DirectMessage{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		Timestamp:  time.Now(),
	}
	if err := s.repo.CreateDirect(ctx, m); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("creating direct message: %w", err)
	}
	if s.events != nil {
		s.events.Publish(UserRoom(receiverID), EventDirectMessage, m)
		s.events.Publish(UserRoom(senderID), EventDirectMessage, m)
	}
	return m, nil
}

// Conversation returns the messages exchanged between two users oldest first.
func (s *Service) Conversation(ctx context.Context, userA, userB string, limit int) ([]DirectMessage, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.repo.ListConversation(ctx, userA, userB, limit)
}

// DirectForUser returns the latest direct messages a user sent or received,
// oldest first.
func (s *Service) DirectForUser(ctx context.Context, userID string, limit int) ([]DirectMessage, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	return s.repo.ListDirectForUser(ctx, userID, limit)
}
