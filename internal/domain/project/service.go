package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/repository"
	"github.com/google/uuid"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	teams  Teams
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, teams Teams, logger *slog.Logger) *Service {
	return &Service{repo: repo, teams: teams, logger: logger}
}

// Create creates a project under a team the caller belongs to and seeds its
// default columns.
func (s *Service) Create(ctx context.Context, actorID string, req CreateRequest) (*Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || strings.TrimSpace(req.TeamID) == "" {
		return nil, ErrInvalidInput
	}

	ok, err := s.teams.Exists(ctx, req.TeamID)
	if err != nil {
		return nil, fmt.Errorf("checking team: %w", err)
	}
	if !ok {
		return nil, ErrTeamNotFound
	}
	member, err := s.teams.IsMember(ctx, req.TeamID, actorID)
	if err != nil {
		return nil, fmt.Errorf("checking membership: %w", err)
	}
	if !member {
		return nil, ErrNotMember
	}

	proj := &Project{
		ID:          uuid.NewString(),
		TeamID:      req.TeamID,
		Name:        name,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	columns := make([]board.Column, len(DefaultColumns))
	proj.ColumnOrder = make([]string, len(DefaultColumns))
	for i, title := range DefaultColumns {
		columns[i] = board.Column{
			ID:        uuid.NewString(),
			ProjectID: proj.ID,
			Title:     title,
			TaskIDs:   board.TaskList{},
			Order:     i,
		}
		proj.ColumnOrder[i] = columns[i].ID
	}

	if err := s.repo.Create(ctx, proj, columns); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}
	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// ListByTeam returns a team's projects.
func (s *Service) ListByTeam(ctx context.Context, teamID string) ([]Project, error) {
	return s.repo.ListByTeam(ctx, teamID)
}

// ListForUser returns the projects of every team the user belongs to.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]Project, error) {
	return s.repo.ListForUser(ctx, userID)
}
