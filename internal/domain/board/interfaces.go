package board

import (
	"context"

	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/domain/notification"
	"github.com/ganot/taskboard/internal/domain/task"
)

// Store reads board state and opens transactions for board mutations.
type Store interface {
	// WithinTx runs fn in one transaction. A non-nil error from fn rolls
	// every write back.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
	ProjectExists(ctx context.Context, projectID string) (bool, error)
	ListColumns(ctx context.Context, projectID string) ([]Column, error)
	GetColumn(ctx context.Context, id string) (*Column, error)
	GetTaskRef(ctx context.Context, taskID string) (*TaskRef, error)
}

// Tx is the transactional view used by board mutations.
type Tx interface {
	ProjectExists(ctx context.Context, projectID string) (bool, error)
	GetColumn(ctx context.Context, id string) (*Column, error)
	// TaskInProject reports whether the task still exists and belongs to
	// projectID.
	TaskInProject(ctx context.Context, taskID, projectID string) (bool, error)
	// ColumnsForUpdate loads every column of a project sorted by id.
	ColumnsForUpdate(ctx context.Context, projectID string) ([]Column, error)
	CreateColumn(ctx context.Context, col *Column) error
	// UpdateColumn writes title, order and task ids when col.Version still
	// matches storage and then increments col.Version. A stale version
	// yields repository.ErrConflict.
	UpdateColumn(ctx context.Context, col *Column) error
	DeleteColumn(ctx context.Context, id string) error
	// ColumnOrder reads the project's column ids sorted by stored order.
	ColumnOrder(ctx context.Context, projectID string) ([]string, error)
	SetColumnOrderCache(ctx context.Context, projectID string, ids []string) error
	CreateTask(ctx context.Context, t *task.Task) error
	// DeleteTask removes the task with its comments, attachments and
	// assignee links and returns the removed attachment locators.
	DeleteTask(ctx context.Context, taskID string) ([]string, error)
}

// Notifier schedules best-effort notifications.
type Notifier interface {
	Enqueue(ctx context.Context, req notification.Request)
}

// FileRemover deletes stored attachment files.
type FileRemover interface {
	Delete(ctx context.Context, locator string) error
}

// ActivityRecorder appends to the project feed without failing the caller.
type ActivityRecorder interface {
	Record(ctx context.Context, entry *activity.ActivityEntry)
}

// Publisher fans board events out to live subscribers.
type Publisher interface {
	Publish(projectID, eventType string, data any)
}
