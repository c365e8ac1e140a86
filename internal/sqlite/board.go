package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/repository"
)

// BoardStore implements board.Store for SQLite
type BoardStore struct {
	db *DB
}

// NewBoardStore creates a new BoardStore
func NewBoardStore(db *DB) *BoardStore {
	return &BoardStore{db: db}
}

// WithinTx runs fn in a single transaction.
func (s *BoardStore) WithinTx(ctx context.Context, fn func(tx board.Tx) error) error {
	return s.db.withTx(ctx, func(tx *sql.Tx) error {
		return fn(&boardTx{tx: tx})
	})
}

// ProjectExists reports whether a project exists
func (s *BoardStore) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	return projectExists(ctx, s.db, projectID)
}

// ListColumns returns a project's columns sorted by position
func (s *BoardStore) ListColumns(ctx context.Context, projectID string) ([]board.Column, error) {
	return listColumns(ctx, s.db, projectID, "position, id")
}

// GetColumn retrieves a column by ID
func (s *BoardStore) GetColumn(ctx context.Context, id string) (*board.Column, error) {
	return getColumn(ctx, s.db, id)
}

// GetTaskRef resolves a task's project
func (s *BoardStore) GetTaskRef(ctx context.Context, taskID string) (*board.TaskRef, error) {
	var ref board.TaskRef
	err := s.db.QueryRowContext(ctx,
		`SELECT id, project_id, title FROM tasks WHERE id = ?`, taskID,
	).Scan(&ref.ID, &ref.ProjectID, &ref.Title)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return &ref, nil
}

// boardTx implements board.Tx on top of a SQL transaction.
type boardTx struct {
	tx *sql.Tx
}

func (t *boardTx) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	return projectExists(ctx, t.tx, projectID)
}

func (t *boardTx) GetColumn(ctx context.Context, id string) (*board.Column, error) {
	return getColumn(ctx, t.tx, id)
}

func (t *boardTx) TaskInProject(ctx context.Context, taskID, projectID string) (bool, error) {
	var n int
	err := t.tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM tasks WHERE id = ? AND project_id = ?`, taskID, projectID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check task: %w", err)
	}
	return n > 0, nil
}

func (t *boardTx) ColumnsForUpdate(ctx context.Context, projectID string) ([]board.Column, error) {
	return listColumns(ctx, t.tx, projectID, "id")
}

func (t *boardTx) CreateColumn(ctx context.Context, col *board.Column) error {
	taskIDs, err := encodeJSON(nonNilTasks(col.TaskIDs))
	if err != nil {
		return err
	}
	_, err = t.tx.ExecContext(ctx, `
		INSERT INTO board_columns (id, project_id, title, position, task_ids, version)
		VALUES (?, ?, ?, ?, ?, 0)
	`, col.ID, col.ProjectID, col.Title, col.Order, taskIDs)
	if err != nil {
		if cerr := constraintError(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("failed to create column: %w", err)
	}
	col.Version = 0
	return nil
}

// UpdateColumn writes the column if its version is unchanged and bumps it.
func (t *boardTx) UpdateColumn(ctx context.Context, col *board.Column) error {
	taskIDs, err := encodeJSON(nonNilTasks(col.TaskIDs))
	if err != nil {
		return err
	}
	result, err := t.tx.ExecContext(ctx, `
		UPDATE board_columns
		SET title = ?, position = ?, task_ids = ?, version = version + 1
		WHERE id = ? AND version = ?
	`, col.Title, col.Order, taskIDs, col.ID, col.Version)
	if err != nil {
		return fmt.Errorf("failed to update column: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		if _, err := getColumn(ctx, t.tx, col.ID); errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return repository.ErrConflict
	}
	col.Version++
	return nil
}

func (t *boardTx) DeleteColumn(ctx context.Context, id string) error {
	result, err := t.tx.ExecContext(ctx, `DELETE FROM board_columns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete column: %w", err)
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

func (t *boardTx) ColumnOrder(ctx context.Context, projectID string) ([]string, error) {
	rows, err := t.tx.QueryContext(ctx,
		`SELECT id FROM board_columns WHERE project_id = ? ORDER BY position, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to read column order: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan column id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column rows: %w", err)
	}
	return ids, nil
}

func (t *boardTx) SetColumnOrderCache(ctx context.Context, projectID string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	encoded, err := encodeJSON(ids)
	if err != nil {
		return err
	}
	result, err := t.tx.ExecContext(ctx, `UPDATE projects SET column_order = ? WHERE id = ?`, encoded, projectID)
	if err != nil {
		return fmt.Errorf("failed to update column order: %w", err)
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

func (t *boardTx) CreateTask(ctx context.Context, tk *task.Task) error {
	tags, err := encodeJSON(nonNilStrings(tk.Tags))
	if err != nil {
		return err
	}
	_, err = t.tx.ExecContext(ctx, `
		INSERT INTO tasks (
			id, project_id, title, description, due_date, priority,
			tags, weight, completed, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		tk.ID,
		tk.ProjectID,
		tk.Title,
		tk.Description,
		nullableTime(tk.DueDate),
		string(tk.Priority),
		tags,
		tk.Weight,
		tk.Completed,
		tk.CreatedAt,
		tk.UpdatedAt,
	)
	if err != nil {
		if cerr := constraintError(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("failed to create task: %w", err)
	}
	return replaceAssignees(ctx, t.tx, tk.ID, tk.AssigneeIDs)
}

// DeleteTask removes the task and everything it owns.
func (t *boardTx) DeleteTask(ctx context.Context, taskID string) ([]string, error) {
	rows, err := t.tx.QueryContext(ctx, `SELECT url FROM attachments WHERE task_id = ?`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	var locators []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		locators = append(locators, url)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating attachment rows: %w", err)
	}
	rows.Close()

	for _, stmt := range []string{
		`DELETE FROM attachments WHERE task_id = ?`,
		`DELETE FROM comments WHERE task_id = ?`,
		`DELETE FROM task_assignees WHERE task_id = ?`,
	} {
		if _, err := t.tx.ExecContext(ctx, stmt, taskID); err != nil {
			return nil, fmt.Errorf("failed to delete task children: %w", err)
		}
	}

	result, err := t.tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return nil, repository.ErrNotFound
	}
	return locators, nil
}

func projectExists(ctx context.Context, q querier, projectID string) (bool, error) {
	var n int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects WHERE id = ?`, projectID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check project: %w", err)
	}
	return n > 0, nil
}

func getColumn(ctx context.Context, q querier, id string) (*board.Column, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, project_id, title, position, task_ids, version
		FROM board_columns
		WHERE id = ?
	`, id)
	col, err := scanColumn(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get column: %w", err)
	}
	return col, nil
}

func listColumns(ctx context.Context, q querier, projectID, orderBy string) ([]board.Column, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, project_id, title, position, task_ids, version
		FROM board_columns
		WHERE project_id = ?
		ORDER BY `+orderBy, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns: %w", err)
	}
	defer rows.Close()

	cols := []board.Column{}
	for rows.Next() {
		col, err := scanColumn(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		cols = append(cols, *col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column rows: %w", err)
	}
	return cols, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanColumn(row rowScanner) (*board.Column, error) {
	var (
		col     board.Column
		taskIDs string
	)
	if err := row.Scan(&col.ID, &col.ProjectID, &col.Title, &col.Order, &taskIDs, &col.Version); err != nil {
		return nil, err
	}
	ids, err := decodeStrings(taskIDs)
	if err != nil {
		return nil, err
	}
	col.TaskIDs = board.TaskList(ids)
	return &col, nil
}

func replaceAssignees(ctx context.Context, tx *sql.Tx, taskID string, userIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM task_assignees WHERE task_id = ?`, taskID); err != nil {
		return fmt.Errorf("failed to clear assignees: %w", err)
	}
	for _, userID := range userIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO task_assignees (task_id, user_id) VALUES (?, ?)`, taskID, userID)
		if err != nil {
			if cerr := constraintError(err); cerr != nil {
				return cerr
			}
			return fmt.Errorf("failed to add assignee: %w", err)
		}
	}
	return nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nonNilTasks(l board.TaskList) board.TaskList {
	if l == nil {
		return board.TaskList{}
	}
	return l
}

func nonNilStrings(l []string) []string {
	if l == nil {
		return []string{}
	}
	return l
}
