package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a project and its seed columns in one transaction
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project, columns []board.Column) error {
	order, err := encodeJSON(nonNilStrings(proj.ColumnOrder))
	if err != nil {
		return err
	}
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO projects (id, team_id, name, description, column_order, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, proj.ID, proj.TeamID, proj.Name, proj.Description, order, proj.CreatedAt)
		if err != nil {
			if cerr := constraintError(err); cerr != nil {
				return cerr
			}
			return fmt.Errorf("failed to create project: %w", err)
		}

		btx := &boardTx{tx: tx}
		for i := range columns {
			if err := btx.CreateColumn(ctx, &columns[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, team_id, name, description, column_order, created_at
		FROM projects
		WHERE id = ?
	`, id)
	proj, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return proj, nil
}

// ListByTeam returns a team's projects oldest first
func (r *ProjectRepository) ListByTeam(ctx context.Context, teamID string) ([]project.Project, error) {
	return r.list(ctx, `
		SELECT id, team_id, name, description, column_order, created_at
		FROM projects
		WHERE team_id = ?
		ORDER BY created_at, id
	`, teamID)
}

// ListForUser returns the projects of every team the user belongs to
func (r *ProjectRepository) ListForUser(ctx context.Context, userID string) ([]project.Project, error) {
	return r.list(ctx, `
		SELECT p.id, p.team_id, p.name, p.description, p.column_order, p.created_at
		FROM projects p
		JOIN team_members m ON m.team_id = p.team_id
		WHERE m.user_id = ?
		ORDER BY p.created_at, p.id
	`, userID)
}

// Exists reports whether a project exists
func (r *ProjectRepository) Exists(ctx context.Context, id string) (bool, error) {
	return projectExists(ctx, r.db, id)
}

func (r *ProjectRepository) list(ctx context.Context, query string, args ...any) ([]project.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []project.Project{}
	for rows.Next() {
		proj, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return projects, nil
}

func scanProject(row rowScanner) (*project.Project, error) {
	var (
		proj  project.Project
		order string
	)
	if err := row.Scan(&proj.ID, &proj.TeamID, &proj.Name, &proj.Description, &order, &proj.CreatedAt); err != nil {
		return nil, err
	}
	ids, err := decodeStrings(order)
	if err != nil {
		return nil, err
	}
	proj.ColumnOrder = ids
	return &proj, nil
}
