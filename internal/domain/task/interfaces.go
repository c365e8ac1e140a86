package task

import (
	"context"

	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/domain/notification"
)

// Repository provides persistence for task fields, comments and attachments.
// Creation and deletion belong to the board coordinator.
type Repository interface {
	Get(ctx context.Context, id string) (*Task, error)
	ListByProject(ctx context.Context, projectID string) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	AddComment(ctx context.Context, c *Comment) error
	ListComments(ctx context.Context, taskID string) ([]Comment, error)
	AddAttachment(ctx context.Context, a *Attachment) error
	ListAttachments(ctx context.Context, taskID string) ([]Attachment, error)
}

// SearchRepository provides full-text search over tasks.
type SearchRepository interface {
	Search(ctx context.Context, projectID, query string, opts SearchOptions) ([]SearchResult, error)
}

// FileStore keeps attachment bytes.
type FileStore interface {
	Store(ctx context.Context, name string, data []byte) (string, error)
	Delete(ctx context.Context, locator string) error
}

// Notifier schedules best-effort notifications.
type Notifier interface {
	Enqueue(ctx context.Context, req notification.Request)
}

// ActivityRecorder appends to the project feed without failing the caller.
type ActivityRecorder interface {
	Record(ctx context.Context, entry *activity.ActivityEntry)
}

// Publisher fans task events out to live subscribers.
type Publisher interface {
	Publish(room, eventType string, data any)
}
