package project

import (
	"context"

	"github.com/ganot/taskboard/internal/domain/board"
)

// Repository provides persistence for projects.
type Repository interface {
	// Create stores the project together with its seed columns.
	Create(ctx context.Context, proj *Project, columns []board.Column) error
	Get(ctx context.Context, id string) (*Project, error)
	ListByTeam(ctx context.Context, teamID string) ([]Project, error)
	ListForUser(ctx context.Context, userID string) ([]Project, error)
}

// Teams answers the membership checks project creation needs.
type Teams interface {
	Exists(ctx context.Context, teamID string) (bool, error)
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
}
