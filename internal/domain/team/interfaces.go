package team

import (
	"context"

	"github.com/ganot/taskboard/internal/domain/user"
)

// Repository provides persistence for teams and memberships.
type Repository interface {
	// Create stores the team and makes adminID its first admin.
	Create(ctx context.Context, t *Team, adminID string) error
	Get(ctx context.Context, id string) (*Team, error)
	ListForUser(ctx context.Context, userID string) ([]Team, error)
	GetMember(ctx context.Context, teamID, userID string) (*Member, error)
	// AddMember is a no-op when the user already belongs to the team.
	AddMember(ctx context.Context, teamID, userID string, role Role) error
	SetJoinRequests(ctx context.Context, teamID string, userIDs []string) error
}

// Users resolves users referenced by invitations and requests.
type Users interface {
	Get(ctx context.Context, id string) (*user.User, error)
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}
