package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/repository"
)

// TaskRepository implements task.Repository for SQLite
type TaskRepository struct {
	db *DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *DB) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `
	id, project_id, title, description, due_date, priority,
	tags, weight, completed, created_at, updated_at
`

// Get retrieves a task with its assignees
func (r *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	assignees, err := r.assignees(ctx, `WHERE task_id = ?`, id)
	if err != nil {
		return nil, err
	}
	t.AssigneeIDs = nonNilStrings(assignees[id])
	return t, nil
}

// ListByProject returns a project's tasks oldest first
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = ? ORDER BY created_at, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}
	rows.Close()

	assignees, err := r.assignees(ctx,
		`WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)`, projectID)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].AssigneeIDs = nonNilStrings(assignees[tasks[i].ID])
	}
	return tasks, nil
}

// Update writes task fields and replaces its assignees
func (r *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	tags, err := encodeJSON(nonNilStrings(t.Tags))
	if err != nil {
		return err
	}
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE tasks
			SET title = ?, description = ?, due_date = ?, priority = ?,
				tags = ?, weight = ?, completed = ?, updated_at = ?
			WHERE id = ?
		`,
			t.Title,
			t.Description,
			nullableTime(t.DueDate),
			string(t.Priority),
			tags,
			t.Weight,
			t.Completed,
			t.UpdatedAt,
			t.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		}
		if rows == 0 {
			return repository.ErrNotFound
		}
		return replaceAssignees(ctx, tx, t.ID, t.AssigneeIDs)
	})
}

// AddComment inserts a comment
func (r *TaskRepository) AddComment(ctx context.Context, c *task.Comment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO comments (id, task_id, author_id, content, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, c.ID, c.TaskID, c.AuthorID, c.Content, c.Timestamp)
	if err != nil {
		if cerr := constraintError(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("failed to add comment: %w", err)
	}
	return nil
}

// ListComments returns a task's comments oldest first
func (r *TaskRepository) ListComments(ctx context.Context, taskID string) ([]task.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, author_id, content, created_at
		FROM comments
		WHERE task_id = ?
		ORDER BY created_at, id
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []task.Comment{}
	for rows.Next() {
		var c task.Comment
		if err := rows.Scan(&c.ID, &c.TaskID, &c.AuthorID, &c.Content, &c.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}

// AddAttachment inserts an attachment row
func (r *TaskRepository) AddAttachment(ctx context.Context, a *task.Attachment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO attachments (id, task_id, name, url, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.ID, a.TaskID, a.Name, a.URL, a.CreatedAt)
	if err != nil {
		if cerr := constraintError(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("failed to add attachment: %w", err)
	}
	return nil
}

// ListAttachments returns a task's attachments oldest first
func (r *TaskRepository) ListAttachments(ctx context.Context, taskID string) ([]task.Attachment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, task_id, name, url, created_at
		FROM attachments
		WHERE task_id = ?
		ORDER BY created_at, id
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	defer rows.Close()

	attachments := []task.Attachment{}
	for rows.Next() {
		var a task.Attachment
		if err := rows.Scan(&a.ID, &a.TaskID, &a.Name, &a.URL, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attachment rows: %w", err)
	}
	return attachments, nil
}

func (r *TaskRepository) assignees(ctx context.Context, where string, args ...any) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT task_id, user_id FROM task_assignees `+where+` ORDER BY task_id, user_id`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignees: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var taskID, userID string
		if err := rows.Scan(&taskID, &userID); err != nil {
			return nil, fmt.Errorf("failed to scan assignee: %w", err)
		}
		out[taskID] = append(out[taskID], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignee rows: %w", err)
	}
	return out, nil
}

func scanTask(row rowScanner) (*task.Task, error) {
	var (
		t        task.Task
		due      sql.NullTime
		priority string
		tags     string
	)
	if err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Title,
		&t.Description,
		&due,
		&priority,
		&tags,
		&t.Weight,
		&t.Completed,
		&t.CreatedAt,
		&t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	t.Priority = task.Priority(strings.ToLower(priority))
	decoded, err := decodeStrings(tags)
	if err != nil {
		return nil, err
	}
	t.Tags = decoded
	t.AssigneeIDs = []string{}
	return &t, nil
}
