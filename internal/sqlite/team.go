package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ganot/taskboard/internal/domain/team"
	"github.com/ganot/taskboard/internal/repository"
)

// TeamRepository implements team.Repository for SQLite
type TeamRepository struct {
	db *DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *DB) *TeamRepository {
	return &TeamRepository{db: db}
}

// Create inserts a team and its first admin in one transaction
func (r *TeamRepository) Create(ctx context.Context, t *team.Team, adminID string) error {
	requests, err := encodeJSON(nonNilStrings(t.JoinRequests))
	if err != nil {
		return err
	}
	return r.db.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO teams (id, name, description, icon, join_requests, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, t.ID, t.Name, t.Description, t.Icon, requests, t.CreatedAt)
		if err != nil {
			if cerr := constraintError(err); cerr != nil {
				return cerr
			}
			return fmt.Errorf("failed to create team: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO team_members (team_id, user_id, role, joined_at)
			VALUES (?, ?, ?, ?)
		`, t.ID, adminID, string(team.RoleAdmin), t.CreatedAt)
		if err != nil {
			if cerr := constraintError(err); cerr != nil {
				return cerr
			}
			return fmt.Errorf("failed to add team admin: %w", err)
		}
		return nil
	})
}

// Get retrieves a team with its members and project ids
func (r *TeamRepository) Get(ctx context.Context, id string) (*team.Team, error) {
	var (
		t        team.Team
		requests string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, icon, join_requests, created_at
		FROM teams
		WHERE id = ?
	`, id).Scan(&t.ID, &t.Name, &t.Description, &t.Icon, &requests, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	if t.JoinRequests, err = decodeStrings(requests); err != nil {
		return nil, err
	}

	if t.Members, err = r.members(ctx, id); err != nil {
		return nil, err
	}
	if t.ProjectIDs, err = r.projectIDs(ctx, id); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListForUser returns the teams a user belongs to
func (r *TeamRepository) ListForUser(ctx context.Context, userID string) ([]team.Team, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id
		FROM teams t
		JOIN team_members m ON m.team_id = t.id
		WHERE m.user_id = ?
		ORDER BY t.created_at, t.id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan team id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating team rows: %w", err)
	}
	rows.Close()

	teams := make([]team.Team, 0, len(ids))
	for _, id := range ids {
		t, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		teams = append(teams, *t)
	}
	return teams, nil
}

// GetMember retrieves one membership
func (r *TeamRepository) GetMember(ctx context.Context, teamID, userID string) (*team.Member, error) {
	var (
		m    team.Member
		role string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT m.user_id, u.name, m.role, m.joined_at
		FROM team_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.team_id = ? AND m.user_id = ?
	`, teamID, userID).Scan(&m.UserID, &m.Name, &role, &m.JoinedAt)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	m.Role = team.Role(role)
	return &m, nil
}

// AddMember inserts a membership unless one exists
func (r *TeamRepository) AddMember(ctx context.Context, teamID, userID string, role team.Role) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO team_members (team_id, user_id, role, joined_at)
		VALUES (?, ?, ?, ?)
	`, teamID, userID, string(role), time.Now())
	if err != nil {
		if cerr := constraintError(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// SetJoinRequests replaces the pending join requests
func (r *TeamRepository) SetJoinRequests(ctx context.Context, teamID string, userIDs []string) error {
	encoded, err := encodeJSON(nonNilStrings(userIDs))
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, `UPDATE teams SET join_requests = ? WHERE id = ?`, encoded, teamID)
	if err != nil {
		return fmt.Errorf("failed to update join requests: %w", err)
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

func (r *TeamRepository) members(ctx context.Context, teamID string) ([]team.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.user_id, u.name, m.role, m.joined_at
		FROM team_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.team_id = ?
		ORDER BY m.joined_at, m.user_id
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	members := []team.Member{}
	for rows.Next() {
		var (
			m    team.Member
			role string
		)
		if err := rows.Scan(&m.UserID, &m.Name, &role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.Role = team.Role(role)
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating member rows: %w", err)
	}
	return members, nil
}

func (r *TeamRepository) projectIDs(ctx context.Context, teamID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id FROM projects WHERE team_id = ? ORDER BY created_at, id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team projects: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan project id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}
	return ids, nil
}
