package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/domain/notification"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/repository"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Event types published after board mutations commit.
const (
	EventTaskCreated      = "task_created"
	EventTaskMoved        = "task_moved"
	EventTaskDeleted      = "task_deleted"
	EventColumnCreated    = "column_created"
	EventColumnRenamed    = "column_renamed"
	EventColumnDeleted    = "column_deleted"
	EventColumnsReordered = "columns_reordered"
)

// Service coordinates every mutation that touches column task lists.
//
// Mutations of one project are serialised by an in-process lock taken before
// the transaction opens; column versions guard against writers in other
// processes.
type Service struct {
	store      Store
	notifier   Notifier
	files      FileRemover
	activities ActivityRecorder
	events     Publisher
	logger     *slog.Logger
	locks      *projectLocks
	tracer     trace.Tracer
}

// NewService creates a board service. Every collaborator except store may be nil.
func NewService(
	store Store,
	notifier Notifier,
	files FileRemover,
	activities ActivityRecorder,
	events Publisher,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		store:      store,
		notifier:   notifier,
		files:      files,
		activities: activities,
		events:     events,
		logger:     logger,
		locks:      newProjectLocks(),
		tracer:     otel.Tracer("github.com/ganot/taskboard/internal/domain/board"),
	}
}

// GetBoard returns a project's columns and their display order.
func (s *Service) GetBoard(ctx context.Context, projectID string) (*Board, error) {
	ok, err := s.store.ProjectExists(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("checking project: %w", err)
	}
	if !ok {
		return nil, ErrProjectNotFound
	}
	cols, err := s.store.ListColumns(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}
	return &Board{ProjectID: projectID, Columns: ByID(cols), ColumnOrder: OrderIDs(cols)}, nil
}

// CreateTask inserts a task and, when req.ColumnID is set, appends it to that
// column in the same transaction.
func (s *Service) CreateTask(ctx context.Context, actorID string, req task.CreateRequest) (_ *task.Task, err error) {
	if err := task.ValidateCreateInput(req); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "board.CreateTask", trace.WithAttributes(
		attribute.String("project.id", req.ProjectID),
		attribute.String("column.id", req.ColumnID),
	))
	defer func() { endSpan(span, err) }()

	unlock := s.locks.Lock(req.ProjectID)
	defer unlock()

	t := task.New(uuid.NewString(), req, time.Now())
	err = s.store.WithinTx(ctx, func(tx Tx) error {
		ok, err := tx.ProjectExists(ctx, req.ProjectID)
		if err != nil {
			return fmt.Errorf("checking project: %w", err)
		}
		if !ok {
			return ErrProjectNotFound
		}

		var col *Column
		if req.ColumnID != "" {
			col, err = tx.GetColumn(ctx, req.ColumnID)
			if err != nil {
				return translate(err, ErrColumnNotFound, "loading column")
			}
			if col.ProjectID != req.ProjectID {
				return ErrColumnNotFound
			}
		}

		if err := tx.CreateTask(ctx, t); err != nil {
			if errors.Is(err, repository.ErrForeignKeyViolation) {
				return task.ErrUserNotFound
			}
			return fmt.Errorf("creating task: %w", err)
		}

		if col == nil {
			return nil
		}
		col.TaskIDs = append(col.TaskIDs.Without(t.ID), t.ID)
		return updateColumn(ctx, tx, col)
	})
	if err != nil {
		return nil, err
	}

	s.notifyAssigned(ctx, actorID, t, t.AssigneeIDs)
	s.record(ctx, actorID, &activity.ActivityEntry{
		ProjectID:    t.ProjectID,
		TaskID:       &t.ID,
		ActivityType: activity.TypeTaskCreated,
		Summary:      fmt.Sprintf("created task %q", t.Title),
	})
	s.publish(t.ProjectID, EventTaskCreated, map[string]any{"task": t, "columnId": req.ColumnID})
	return t, nil
}

// MoveTask places a task into a destination column at an optional position.
// Every column of the project is de-duplicated and stripped of the task
// first, so the task ends up in exactly one column. It returns the project's
// columns keyed by id.
func (s *Service) MoveTask(ctx context.Context, req MoveRequest) (_ map[string]Column, err error) {
	if strings.TrimSpace(req.TaskID) == "" || strings.TrimSpace(req.ToColumnID) == "" {
		return nil, ErrInvalidInput
	}

	ctx, span := s.tracer.Start(ctx, "board.MoveTask", trace.WithAttributes(
		attribute.String("task.id", req.TaskID),
		attribute.String("column.id", req.ToColumnID),
	))
	defer func() { endSpan(span, err) }()

	ref, err := s.store.GetTaskRef(ctx, req.TaskID)
	if err != nil {
		return nil, translate(err, ErrTaskNotFound, "loading task")
	}
	span.SetAttributes(attribute.String("project.id", ref.ProjectID))

	unlock := s.locks.Lock(ref.ProjectID)
	defer unlock()

	var (
		result map[string]Column
		moved  MoveResult
	)
	err = s.store.WithinTx(ctx, func(tx Tx) error {
		if err := requireTask(ctx, tx, ref); err != nil {
			return err
		}
		dest, err := tx.GetColumn(ctx, req.ToColumnID)
		if err != nil {
			return translate(err, ErrColumnNotFound, "loading column")
		}
		if dest.ProjectID != ref.ProjectID {
			return ErrCrossProject
		}

		cols, err := tx.ColumnsForUpdate(ctx, ref.ProjectID)
		if err != nil {
			return fmt.Errorf("loading columns: %w", err)
		}
		moved, err = Move(cols, ref.ID, dest.ID, req.Position)
		if err != nil {
			return err
		}
		if err := persist(ctx, tx, cols, moved.Changed); err != nil {
			return err
		}
		result = ByID(cols)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(moved.From) > 1 {
		s.logger.Warn("task was listed in several columns", "task_id", ref.ID, "columns", moved.From)
	}

	details := map[string]any{"from": moved.From, "to": req.ToColumnID}
	if req.Position != nil {
		details["position"] = *req.Position
	}
	s.record(ctx, req.ActorID, &activity.ActivityEntry{
		ProjectID:    ref.ProjectID,
		TaskID:       &ref.ID,
		ActivityType: activity.TypeTaskMoved,
		Summary:      fmt.Sprintf("moved task %q", ref.Title),
		Details:      encodeDetails(details),
	})
	s.publish(ref.ProjectID, EventTaskMoved, map[string]any{
		"taskId":     ref.ID,
		"toColumnId": req.ToColumnID,
		"columns":    result,
	})
	return result, nil
}

// requireTask re-resolves ref inside the transaction. The task may have been
// deleted between the unlocked lookup and taking the project lock.
func requireTask(ctx context.Context, tx Tx, ref *TaskRef) error {
	ok, err := tx.TaskInProject(ctx, ref.ID, ref.ProjectID)
	if err != nil {
		return fmt.Errorf("checking task: %w", err)
	}
	if !ok {
		return ErrTaskNotFound
	}
	return nil
}

// DeleteTask removes a task from every column and deletes it with its
// comments, attachments and assignee links. Attachment files are removed
// after the transaction commits.
func (s *Service) DeleteTask(ctx context.Context, actorID, taskID string) (err error) {
	ctx, span := s.tracer.Start(ctx, "board.DeleteTask", trace.WithAttributes(
		attribute.String("task.id", taskID),
	))
	defer func() { endSpan(span, err) }()

	ref, err := s.store.GetTaskRef(ctx, taskID)
	if err != nil {
		return translate(err, ErrTaskNotFound, "loading task")
	}

	unlock := s.locks.Lock(ref.ProjectID)
	defer unlock()

	var locators []string
	err = s.store.WithinTx(ctx, func(tx Tx) error {
		if err := requireTask(ctx, tx, ref); err != nil {
			return err
		}
		cols, err := tx.ColumnsForUpdate(ctx, ref.ProjectID)
		if err != nil {
			return fmt.Errorf("loading columns: %w", err)
		}
		if err := persist(ctx, tx, cols, RemoveTask(cols, ref.ID)); err != nil {
			return err
		}
		locators, err = tx.DeleteTask(ctx, ref.ID)
		if err != nil {
			return translate(err, ErrTaskNotFound, "deleting task")
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.files != nil {
		for _, loc := range locators {
			if err := s.files.Delete(ctx, loc); err != nil {
				s.logger.Warn("attachment file not removed", "task_id", ref.ID, "locator", loc, "error", err)
			}
		}
	}

	s.record(ctx, actorID, &activity.ActivityEntry{
		ProjectID:    ref.ProjectID,
		ActivityType: activity.TypeTaskDeleted,
		Summary:      fmt.Sprintf("deleted task %q", ref.Title),
		Details:      encodeDetails(map[string]any{"taskId": ref.ID}),
	})
	s.publish(ref.ProjectID, EventTaskDeleted, map[string]any{"taskId": ref.ID})
	return nil
}

// CreateColumn appends an empty column after the project's last column.
func (s *Service) CreateColumn(ctx context.Context, actorID, projectID, title string) (_ *Board, err error) {
	title = strings.TrimSpace(title)
	if projectID == "" || title == "" {
		return nil, ErrInvalidInput
	}

	ctx, span := s.tracer.Start(ctx, "board.CreateColumn", trace.WithAttributes(
		attribute.String("project.id", projectID),
	))
	defer func() { endSpan(span, err) }()

	unlock := s.locks.Lock(projectID)
	defer unlock()

	var (
		col   Column
		board *Board
	)
	err = s.store.WithinTx(ctx, func(tx Tx) error {
		ok, err := tx.ProjectExists(ctx, projectID)
		if err != nil {
			return fmt.Errorf("checking project: %w", err)
		}
		if !ok {
			return ErrProjectNotFound
		}
		cols, err := tx.ColumnsForUpdate(ctx, projectID)
		if err != nil {
			return fmt.Errorf("loading columns: %w", err)
		}

		col = Column{
			ID:        uuid.NewString(),
			ProjectID: projectID,
			Title:     title,
			TaskIDs:   TaskList{},
			Order:     NextOrder(cols),
		}
		if err := tx.CreateColumn(ctx, &col); err != nil {
			return fmt.Errorf("creating column: %w", err)
		}
		cols = append(cols, col)

		order := OrderIDs(cols)
		if err := tx.SetColumnOrderCache(ctx, projectID, order); err != nil {
			return fmt.Errorf("caching column order: %w", err)
		}
		board = &Board{ProjectID: projectID, Columns: ByID(cols), ColumnOrder: order}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actorID, &activity.ActivityEntry{
		ProjectID:    projectID,
		ActivityType: activity.TypeColumnCreated,
		Summary:      fmt.Sprintf("created column %q", col.Title),
	})
	s.publish(projectID, EventColumnCreated, board)
	return board, nil
}

// RenameColumn changes a column's title.
func (s *Service) RenameColumn(ctx context.Context, actorID, columnID, title string) (_ *Column, err error) {
	title = strings.TrimSpace(title)
	if columnID == "" || title == "" {
		return nil, ErrInvalidInput
	}

	ctx, span := s.tracer.Start(ctx, "board.RenameColumn", trace.WithAttributes(
		attribute.String("column.id", columnID),
	))
	defer func() { endSpan(span, err) }()

	existing, err := s.store.GetColumn(ctx, columnID)
	if err != nil {
		return nil, translate(err, ErrColumnNotFound, "loading column")
	}

	unlock := s.locks.Lock(existing.ProjectID)
	defer unlock()

	var col *Column
	err = s.store.WithinTx(ctx, func(tx Tx) error {
		current, err := tx.GetColumn(ctx, columnID)
		if err != nil {
			return translate(err, ErrColumnNotFound, "loading column")
		}
		current.Title = title
		if err := updateColumn(ctx, tx, current); err != nil {
			return err
		}
		col = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actorID, &activity.ActivityEntry{
		ProjectID:    col.ProjectID,
		ActivityType: activity.TypeColumnRenamed,
		Summary:      fmt.Sprintf("renamed column to %q", col.Title),
	})
	s.publish(col.ProjectID, EventColumnRenamed, col)
	return col, nil
}

// DeleteColumn removes a column, appending its tasks to the first remaining
// column by order and renumbering the rest densely from 0. It returns the new
// order of every remaining column.
func (s *Service) DeleteColumn(ctx context.Context, actorID, columnID string) (_ map[string]int, err error) {
	ctx, span := s.tracer.Start(ctx, "board.DeleteColumn", trace.WithAttributes(
		attribute.String("column.id", columnID),
	))
	defer func() { endSpan(span, err) }()

	existing, err := s.store.GetColumn(ctx, columnID)
	if err != nil {
		return nil, translate(err, ErrColumnNotFound, "loading column")
	}
	projectID := existing.ProjectID

	unlock := s.locks.Lock(projectID)
	defer unlock()

	var plan DeletePlan
	err = s.store.WithinTx(ctx, func(tx Tx) error {
		cols, err := tx.ColumnsForUpdate(ctx, projectID)
		if err != nil {
			return fmt.Errorf("loading columns: %w", err)
		}
		plan, err = PlanColumnDelete(cols, columnID)
		if err != nil {
			return err
		}

		before := ByID(cols)
		for _, col := range SortByID(plan.Remaining) {
			orig := before[col.ID]
			if orig.Order == col.Order && orig.TaskIDs.Equal(col.TaskIDs) {
				continue
			}
			if err := updateColumn(ctx, tx, &col); err != nil {
				return err
			}
		}
		if err := tx.DeleteColumn(ctx, columnID); err != nil {
			return translate(err, ErrColumnNotFound, "deleting column")
		}
		if err := tx.SetColumnOrderCache(ctx, projectID, OrderIDs(plan.Remaining)); err != nil {
			return fmt.Errorf("caching column order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	orders := make(map[string]int, len(plan.Remaining))
	for _, col := range plan.Remaining {
		orders[col.ID] = col.Order
	}

	s.record(ctx, actorID, &activity.ActivityEntry{
		ProjectID:    projectID,
		ActivityType: activity.TypeColumnDeleted,
		Summary:      fmt.Sprintf("deleted column %q", plan.Deleted.Title),
		Details: encodeDetails(map[string]any{
			"columnId":   columnID,
			"movedTo":    plan.Target.ID,
			"movedTasks": len(plan.Deleted.TaskIDs),
		}),
	})
	s.publish(projectID, EventColumnDeleted, map[string]any{"columnId": columnID, "columnOrder": orders})
	return orders, nil
}

// ReorderColumns assigns each listed column its index in ids. Ids of columns
// outside the project are ignored. It returns the column order as stored
// after the update.
func (s *Service) ReorderColumns(ctx context.Context, actorID, projectID string, ids []string) (_ []string, err error) {
	if projectID == "" {
		return nil, ErrInvalidInput
	}

	ctx, span := s.tracer.Start(ctx, "board.ReorderColumns", trace.WithAttributes(
		attribute.String("project.id", projectID),
		attribute.Int("columns.requested", len(ids)),
	))
	defer func() { endSpan(span, err) }()

	unlock := s.locks.Lock(projectID)
	defer unlock()

	var order []string
	err = s.store.WithinTx(ctx, func(tx Tx) error {
		ok, err := tx.ProjectExists(ctx, projectID)
		if err != nil {
			return fmt.Errorf("checking project: %w", err)
		}
		if !ok {
			return ErrProjectNotFound
		}
		cols, err := tx.ColumnsForUpdate(ctx, projectID)
		if err != nil {
			return fmt.Errorf("loading columns: %w", err)
		}
		if err := persist(ctx, tx, cols, Reorder(cols, ids)); err != nil {
			return err
		}
		order, err = tx.ColumnOrder(ctx, projectID)
		if err != nil {
			return fmt.Errorf("reading column order: %w", err)
		}
		if err := tx.SetColumnOrderCache(ctx, projectID, order); err != nil {
			return fmt.Errorf("caching column order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, actorID, &activity.ActivityEntry{
		ProjectID:    projectID,
		ActivityType: activity.TypeColumnsReordered,
		Summary:      "reordered columns",
		Details:      encodeDetails(map[string]any{"columnOrder": order}),
	})
	s.publish(projectID, EventColumnsReordered, map[string]any{"columnOrder": order})
	return order, nil
}

// persist writes the columns at the given indexes in ascending index order.
// cols is sorted by id, so writes always follow the same order.
func persist(ctx context.Context, tx Tx, cols []Column, changed []int) error {
	sort.Ints(changed)
	for _, i := range changed {
		if err := updateColumn(ctx, tx, &cols[i]); err != nil {
			return err
		}
	}
	return nil
}

func updateColumn(ctx context.Context, tx Tx, col *Column) error {
	if err := tx.UpdateColumn(ctx, col); err != nil {
		switch {
		case errors.Is(err, repository.ErrConflict):
			return ErrConcurrentUpdate
		case errors.Is(err, repository.ErrNotFound):
			return ErrColumnNotFound
		}
		return fmt.Errorf("updating column %s: %w", col.ID, err)
	}
	return nil
}

func translate(err, notFound error, op string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Service) notifyAssigned(ctx context.Context, actorID string, t *task.Task, userIDs []string) {
	if s.notifier == nil {
		return
	}
	for _, userID := range userIDs {
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

func encodeDetails(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
