package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/domain/notification"
	"github.com/ganot/taskboard/internal/repository"
	"github.com/google/uuid"
)

// Event types published after task mutations.
const (
	EventTaskUpdated     = "task_updated"
	EventCommentAdded    = "comment_added"
	EventAttachmentAdded = "attachment_added"
)

// Service handles task fields, comments, attachments and search.
type Service struct {
	tasks      Repository
	search     SearchRepository
	files      FileStore
	notifier   Notifier
	activities ActivityRecorder
	events     Publisher
	logger     *slog.Logger
}

// NewService creates a new task service.
func NewService(
	tasks Repository,
	search SearchRepository,
	files FileStore,
	notifier Notifier,
	activities ActivityRecorder,
	events Publisher,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		tasks:      tasks,
		search:     search,
		files:      files,
		notifier:   notifier,
		activities: activities,
		events:     events,
		logger:     logger,
	}
}

// Get fetches a task with its comments and attachments.
func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "getting task")
	}
	if t.Comments, err = s.tasks.ListComments(ctx, id); err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	if t.Attachments, err = s.tasks.ListAttachments(ctx, id); err != nil {
		return nil, fmt.Errorf("listing attachments: %w", err)
	}
	return t, nil
}

// ListByProject returns every task of a project.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Task, error) {
	tasks, err := s.tasks.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	return tasks, nil
}

// Update applies a partial update. Users newly added as assignees are notified.
func (s *Service) Update(ctx context.Context, actorID, id string, req UpdateRequest) (*Task, error) {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return nil, notFound(err, "getting task")
	}

	added, err := Apply(t, req, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		switch {
		case errors.Is(err, repository.ErrForeignKeyViolation):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("updating task: %w", err)
	}

	if s.notifier != nil {
		for _, userID := range added {
			if userID == actorID {
				continue
			}
			s.notifier.Enqueue(ctx, notification.Request{
				UserID:  userID,
				ActorID: actorID,
				Verb:    notification.VerbTaskAssigned,
				Data: map[string]any{
					"taskId":    t.ID,
					"taskTitle": t.Title,
					"projectId": t.ProjectID,
				},
			})
		}
	}

	s.record(ctx, actorID, &activity.ActivityEntry{
		ProjectID:    t.ProjectID,
		TaskID:       &t.ID,
		ActivityType: activity.TypeTaskUpdated,
		Summary:      fmt.Sprintf("updated task %q", t.Title),
	})
	s.publish(t.ProjectID, EventTaskUpdated, t)
	return t, nil
}

// AddComment attaches a comment authored by authorID.
func (s *Service) AddComment(ctx context.Context, authorID, taskID, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" || authorID == "" {
		return nil, ErrInvalidInput
	}
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, notFound(err, "getting task")
	}

	c := &Comment{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		AuthorID:  authorID,
		Content:   content,
		Timestamp: time.Now(),
	}
	if err := s.tasks.AddComment(ctx, c); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("adding comment: %w", err)
	}

	s.record(ctx, authorID, &activity.ActivityEntry{
		ProjectID:    t.ProjectID,
		TaskID:       &t.ID,
		ActivityType: activity.TypeCommentAdded,
		Summary:      fmt.Sprintf("commented on %q", t.Title),
	})
	s.publish(t.ProjectID, EventCommentAdded, c)
	return c, nil
}

// ListComments returns a task's comments oldest first.
func (s *Service) ListComments(ctx context.Context, taskID string) ([]Comment, error) {
	if _, err := s.tasks.Get(ctx, taskID); err != nil {
		return nil, notFound(err, "getting task")
	}
	return s.tasks.ListComments(ctx, taskID)
}

// AddAttachment stores data and records it against the task. The stored file
// is removed again if the row cannot be written.
func (s *Service) AddAttachment(ctx context.Context, actorID, taskID, name string, data []byte) (*Attachment, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(data) == 0 {
		return nil, ErrInvalidInput
	}
	if s.files == nil {
		return nil, fmt.Errorf("attachments disabled: no file store configured")
	}
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, notFound(err, "getting task")
	}

	locator, err := s.files.Store(ctx, name, data)
	if err != nil {
		return nil, fmt.Errorf("storing attachment: %w", err)
	}

	a := &Attachment{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		Name:      name,
		URL:       locator,
		CreatedAt: time.Now(),
	}
	if err := s.tasks.AddAttachment(ctx, a); err != nil {
		if delErr := s.files.Delete(ctx, locator); delErr != nil {
			s.logger.Warn("orphaned attachment file", "locator", locator, "error", delErr)
		}
		return nil, fmt.Errorf("adding attachment: %w", err)
	}

	s.record(ctx, actorID, &activity.ActivityEntry{
		ProjectID:    t.ProjectID,
		TaskID:       &t.ID,
		ActivityType: activity.TypeAttachmentAdded,
		Summary:      fmt.Sprintf("attached %q to %q", a.Name, t.Title),
	})
	s.publish(t.ProjectID, EventAttachmentAdded, a)
	return a, nil
}

// Search runs a full-text query over a project's task titles and descriptions.
func (s *Service) Search(ctx context.Context, projectID, query string, opts SearchOptions) ([]SearchResult, error) {
	if strings.TrimSpace(projectID) == "" || strings.TrimSpace(query) == "" {
		return nil, ErrInvalidInput
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	results, err := s.search.Search(ctx, projectID, query, opts)
	if err != nil {
		return nil, fmt.Errorf("searching tasks: %w", err)
	}
	return results, nil
}

func (s *Service) record(ctx context.Context, actorID string, entry *activity.ActivityEntry) {
	if s.activities == nil {
		return
	}
	if actorID != "" {
		entry.ActorID = &actorID
	}
	s.activities.Record(ctx, entry)
}

func (s *Service) publish(projectID, eventType string, data any) {
	if s.events != nil {
		s.events.Publish(projectID, eventType, data)
	}
}

func notFound(err error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTaskNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
