package notification

import "context"

// Repository persists notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	Get(ctx context.Context, id string) (*Notification, error)
	ListForUser(ctx context.Context, userID string, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}

// Queue hands notifications to the asynchronous delivery worker together
// with every channel they must go out on.
type Queue interface {
	Push(ctx context.Context, notificationID string, channels []string) error
}

// Sender delivers a formatted notification on one channel.
type Sender interface {
	Channel() string
	Send(ctx context.Context, n *Notification, title, body string) error
}

// Directory resolves display names for message formatting.
type Directory interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}
