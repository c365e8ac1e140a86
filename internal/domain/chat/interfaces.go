package chat

import "context"

// Repository provides persistence for chat and direct messages.
type Repository interface {
	CreateMessage(ctx context.Context, m *Message) error
	ListMessages(ctx context.Context, projectID string, limit int) ([]Message, error)
	CreateDirect(ctx context.Context, m *DirectMessage) error
	ListConversation(ctx context.Context, userA, userB string, limit int) ([]DirectMessage, error)
	ListDirectForUser(ctx context.Context, userID string, limit int) ([]DirectMessage, error)
}

// Publisher fans messages out to live subscribers.
type Publisher interface {
	Publish(room, eventType string, data any)
}
