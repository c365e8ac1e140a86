package project_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/repository"
	"github.com/ganot/taskboard/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectService_CreateSeedsDefaultColumns(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	teams := &mocks.ProjectTeams{}
	teams.On("Exists", ctx, "t1").Return(true, nil)
	teams.On("IsMember", ctx, "t1", "u1").Return(true, nil)

	var seeded []board.Column
	repo.On("Create", ctx, mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		seeded = args.Get(2).([]board.Column)
	}).Return(nil)

	svc := project.NewService(repo, teams, nil)
	proj, err := svc.Create(ctx, "u1", project.CreateRequest{TeamID: "t1", Name: " Launch "})
	require.NoError(t, err)
	require.NotEmpty(t, proj.ID)
	require.Equal(t, "Launch", proj.Name)

	require.Len(t, seeded, 3)
	for i, col := range seeded {
		require.Equal(t, project.DefaultColumns[i], col.Title)
		require.Equal(t, i, col.Order)
		require.Equal(t, proj.ID, col.ProjectID)
		require.Empty(t, col.TaskIDs)
		require.Equal(t, col.ID, proj.ColumnOrder[i])
	}
}

func TestProjectService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	teams := &mocks.ProjectTeams{}
	svc := project.NewService(repo, teams, nil)

	_, err := svc.Create(ctx, "u1", project.CreateRequest{TeamID: "t1", Name: "  "})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	_, err = svc.Create(ctx, "u1", project.CreateRequest{Name: "x"})
	require.ErrorIs(t, err, project.ErrInvalidInput)

	teams.On("Exists", ctx, "missing").Return(false, nil)
	_, err = svc.Create(ctx, "u1", project.CreateRequest{TeamID: "missing", Name: "x"})
	require.ErrorIs(t, err, project.ErrTeamNotFound)

	teams.On("Exists", ctx, "t1").Return(true, nil)
	teams.On("IsMember", ctx, "t1", "outsider").Return(false, nil)
	_, err = svc.Create(ctx, "outsider", project.CreateRequest{TeamID: "t1", Name: "x"})
	require.ErrorIs(t, err, project.ErrNotMember)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestProjectService_Get(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, "p1").Return(&project.Project{ID: "p1"}, nil)
	repo.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)
	repo.On("Get", ctx, "broken").Return(nil, errors.New("db closed"))

	svc := project.NewService(repo, nil, nil)

	proj, err := svc.Get(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, "p1", proj.ID)

	_, err = svc.Get(ctx, "missing")
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	_, err = svc.Get(ctx, "broken")
	require.Error(t, err)
	require.NotErrorIs(t, err, project.ErrProjectNotFound)
}
