package team

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ganot/taskboard/internal/domain/user"
	"github.com/ganot/taskboard/internal/repository"
	"github.com/google/uuid"
)

// Service handles team membership and join requests.
type Service struct {
	teams  Repository
	users  Users
	logger *slog.Logger

	// requestsMu serialises read-modify-write of join request lists.
	requestsMu sync.Mutex
}

// NewService creates a new team service. logger may be nil.
func NewService(teams Repository, users Users, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{teams: teams, users: users, logger: logger}
}

// Create stores a team with the caller as its admin.
func (s *Service) Create(ctx context.Context, actorID string, req CreateRequest) (*Team, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || actorID == "" {
		return nil, ErrInvalidInput
	}

	t := &Team{
		ID:           uuid.NewString(),
		Name:         name,
		Description:  req.Description,
		Icon:         req.Icon,
		JoinRequests: []string{},
		ProjectIDs:   []string{},
		CreatedAt:    time.Now(),
	}
	if err := s.teams.Create(ctx, t, actorID); err != nil {
		if errors.Is(err, repository.ErrForeignKeyViolation) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("creating team: %w", err)
	}
	return s.Get(ctx, t.ID)
}

// Get fetches a team with its members and project ids.
func (s *Service) Get(ctx context.Context, id string) (*Team, error) {
	t, err := s.teams.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("getting team: %w", err)
	}
	return t, nil
}

// ListForUser returns the teams a user belongs to.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Team, error) {
	return s.teams.ListForUser(ctx, userID)
}

// Exists reports whether the team exists.
func (s *Service) Exists(ctx context.Context, teamID string) (bool, error) {
	_, err := s.Get(ctx, teamID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrTeamNotFound) {
		return false, nil
	}
	return false, err
}

// IsMember reports whether userID belongs to teamID.
func (s *Service) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	_, err := s.teams.GetMember(ctx, teamID, userID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return false, fmt.Errorf("getting member: %w", err)
}

// Invite adds the user registered under email as a member. Admin only.
func (s *Service) Invite(ctx context.Context, actorID, teamID, email string) (*Team, error) {
	email = user.NormalizeEmail(email)
	if email == "" {
		return nil, ErrInvalidInput
	}
	if err := s.requireAdmin(ctx, teamID, actorID); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}
	if err := s.teams.AddMember(ctx, teamID, u.ID, RoleMember); err != nil {
		return nil, fmt.Errorf("adding member: %w", err)
	}
	return s.Get(ctx, teamID)
}

// RequestJoin records the caller's request to join. Repeated requests are
// kept once.
func (s *Service) RequestJoin(ctx context.Context, actorID, teamID string) (*Team, error) {
	s.requestsMu.Lock()
	defer s.requestsMu.Unlock()

	t, err := s.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if slices.Contains(t.JoinRequests, actorID) {
		return t, nil
	}
	t.JoinRequests = append(t.JoinRequests, actorID)
	if err := s.teams.SetJoinRequests(ctx, teamID, t.JoinRequests); err != nil {
		return nil, fmt.Errorf("saving join requests: %w", err)
	}
	return t, nil
}

// ManageRequest approves or denies a pending join request. Approval adds the
// user as a member; both outcomes clear the request. Admin only.
func (s *Service) ManageRequest(ctx context.Context, actorID, teamID, userID, action string) (*Team, error) {
	if action != ActionApprove && action != ActionDeny {
		return nil, ErrInvalidAction
	}
	if err := s.requireAdmin(ctx, teamID, actorID); err != nil {
		return nil, err
	}
	if _, err := s.users.Get(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	s.requestsMu.Lock()
	defer s.requestsMu.Unlock()

	if action == ActionApprove {
		if err := s.teams.AddMember(ctx, teamID, userID, RoleMember); err != nil {
			return nil, fmt.Errorf("adding member: %w", err)
		}
	}

	t, err := s.Get(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if i := slices.Index(t.JoinRequests, userID); i >= 0 {
		t.JoinRequests = slices.Delete(t.JoinRequests, i, i+1)
		if err := s.teams.SetJoinRequests(ctx, teamID, t.JoinRequests); err != nil {
			return nil, fmt.Errorf("saving join requests: %w", err)
		}
	}
	return t, nil
}

func (s *Service) requireAdmin(ctx context.Context, teamID, userID string) error {
	if _, err := s.Get(ctx, teamID); err != nil {
		return err
	}
	m, err := s.teams.GetMember(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.InfoContext(ctx, "team admin action denied", "team_id", teamID, "user_id", userID, "reason", "not a member")
			return ErrNotAdmin
		}
		return fmt.Errorf("getting member: %w", err)
	}
	if m.Role != RoleAdmin {
		s.logger.InfoContext(ctx, "team admin action denied", "team_id", teamID, "user_id", userID, "role", m.Role)
		return ErrNotAdmin
	}
	return nil
}
