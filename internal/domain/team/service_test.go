package team_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/ganot/taskboard/internal/domain/team"
	"github.com/ganot/taskboard/internal/domain/user"
	"github.com/ganot/taskboard/internal/repository"
	"github.com/ganot/taskboard/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTeamService() (*team.Service, *mocks.TeamRepository, *mocks.UserRepository) {
	teams := new(mocks.TeamRepository)
	users := new(mocks.UserRepository)
	return team.NewService(teams, users, nil), teams, users
}

func adminTeam(joinRequests ...string) *team.Team {
	if joinRequests == nil {
		joinRequests = []string{}
	}
	return &team.Team{
		ID:           "t1",
		Name:         "Core",
		JoinRequests: joinRequests,
		Members:      []team.Member{{UserID: "admin", Role: team.RoleAdmin}},
	}
}

func TestService_Create(t *testing.T) {
	svc, teams, _ := newTeamService()
	ctx := context.Background()

	var createdID string
	teams.On("Create", ctx, mock.MatchedBy(func(tm *team.Team) bool {
		createdID = tm.ID
		return tm.Name == "Core"
	}), "admin").Return(nil)
	teams.On("Get", ctx, mock.Anything).Return(adminTeam(), nil)

	got, err := svc.Create(ctx, "admin", team.CreateRequest{Name: " Core "})
	require.NoError(t, err)
	require.Equal(t, "Core", got.Name)
	require.NotEmpty(t, createdID)

	_, err = svc.Create(ctx, "admin", team.CreateRequest{Name: " "})
	require.ErrorIs(t, err, team.ErrInvalidInput)
}

func TestService_InviteRequiresAdmin(t *testing.T) {
	svc, teams, users := newTeamService()
	ctx := context.Background()

	teams.On("Get", ctx, "t1").Return(adminTeam(), nil)
	teams.On("GetMember", ctx, "t1", "admin").Return(&team.Member{UserID: "admin", Role: team.RoleAdmin}, nil)
	teams.On("GetMember", ctx, "t1", "member").Return(&team.Member{UserID: "member", Role: team.RoleMember}, nil)
	teams.On("GetMember", ctx, "t1", "outsider").Return(nil, repository.ErrNotFound)
	users.On("GetByEmail", ctx, "bob@example.com").Return(&user.User{ID: "bob"}, nil)
	users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrNotFound)
	teams.On("AddMember", ctx, "t1", "bob", team.RoleMember).Return(nil)

	_, err := svc.Invite(ctx, "admin", "t1", " Bob@Example.com")
	require.NoError(t, err)
	teams.AssertCalled(t, "AddMember", ctx, "t1", "bob", team.RoleMember)

	_, err = svc.Invite(ctx, "member", "t1", "bob@example.com")
	require.ErrorIs(t, err, team.ErrNotAdmin)

	_, err = svc.Invite(ctx, "outsider", "t1", "bob@example.com")
	require.ErrorIs(t, err, team.ErrNotAdmin)

	_, err = svc.Invite(ctx, "admin", "t1", "ghost@example.com")
	require.ErrorIs(t, err, team.ErrUserNotFound)
}

func TestService_DeniedAdminActionsAreLogged(t *testing.T) {
	teams := new(mocks.TeamRepository)
	var buf bytes.Buffer
	svc := team.NewService(teams, new(mocks.UserRepository), slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := context.Background()

	teams.On("Get", ctx, "t1").Return(adminTeam("carol"), nil)
	teams.On("GetMember", ctx, "t1", "member").Return(&team.Member{UserID: "member", Role: team.RoleMember}, nil)
	teams.On("GetMember", ctx, "t1", "outsider").Return(nil, repository.ErrNotFound)

	_, err := svc.ManageRequest(ctx, "member", "t1", "carol", team.ActionApprove)
	require.ErrorIs(t, err, team.ErrNotAdmin)
	_, err = svc.Invite(ctx, "outsider", "t1", "bob@example.com")
	require.ErrorIs(t, err, team.ErrNotAdmin)

	out := buf.String()
	require.Contains(t, out, `msg="team admin action denied" team_id=t1 user_id=member role=member`)
	require.Contains(t, out, `msg="team admin action denied" team_id=t1 user_id=outsider reason="not a member"`)
}

func TestService_InviteUnknownTeam(t *testing.T) {
	svc, teams, _ := newTeamService()
	ctx := context.Background()
	teams.On("Get", ctx, "missing").Return(nil, repository.ErrNotFound)

	_, err := svc.Invite(ctx, "admin", "missing", "bob@example.com")
	require.ErrorIs(t, err, team.ErrTeamNotFound)
}

func TestService_RequestJoinIsIdempotent(t *testing.T) {
	svc, teams, _ := newTeamService()
	ctx := context.Background()

	teams.On("Get", ctx, "t1").Return(adminTeam(), nil).Once()
	teams.On("SetJoinRequests", ctx, "t1", []string{"bob"}).Return(nil).Once()

	got, err := svc.RequestJoin(ctx, "bob", "t1")
	require.NoError(t, err)
	require.Equal(t, []string{"bob"}, got.JoinRequests)

	teams.On("Get", ctx, "t1").Return(adminTeam("bob"), nil)
	got, err = svc.RequestJoin(ctx, "bob", "t1")
	require.NoError(t, err)
	require.Equal(t, []string{"bob"}, got.JoinRequests)
	teams.AssertNumberOfCalls(t, "SetJoinRequests", 1)
}

func TestService_ManageRequest(t *testing.T) {
	tests := []struct {
		name      string
		action    string
		addMember bool
	}{
		{name: "approve", action: team.ActionApprove, addMember: true},
		{name: "deny", action: team.ActionDeny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, teams, users := newTeamService()
			ctx := context.Background()

			teams.On("Get", ctx, "t1").Return(adminTeam("bob", "carol"), nil)
			teams.On("GetMember", ctx, "t1", "admin").Return(&team.Member{UserID: "admin", Role: team.RoleAdmin}, nil)
			users.On("Get", ctx, "bob").Return(&user.User{ID: "bob"}, nil)
			teams.On("AddMember", ctx, "t1", "bob", team.RoleMember).Return(nil)
			teams.On("SetJoinRequests", ctx, "t1", []string{"carol"}).Return(nil)

			got, err := svc.ManageRequest(ctx, "admin", "t1", "bob", tt.action)
			require.NoError(t, err)
			require.Equal(t, []string{"carol"}, got.JoinRequests)
			if tt.addMember {
				teams.AssertCalled(t, "AddMember", ctx, "t1", "bob", team.RoleMember)
			} else {
				teams.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestService_ManageRequestRejects(t *testing.T) {
	svc, teams, users := newTeamService()
	ctx := context.Background()

	_, err := svc.ManageRequest(ctx, "admin", "t1", "bob", "maybe")
	require.ErrorIs(t, err, team.ErrInvalidAction)

	teams.On("Get", ctx, "t1").Return(adminTeam("bob"), nil)
	teams.On("GetMember", ctx, "t1", "admin").Return(&team.Member{UserID: "admin", Role: team.RoleAdmin}, nil)
	users.On("Get", ctx, "ghost").Return(nil, repository.ErrNotFound)

	_, err = svc.ManageRequest(ctx, "admin", "t1", "ghost", team.ActionApprove)
	require.ErrorIs(t, err, team.ErrUserNotFound)
	teams.AssertNotCalled(t, "SetJoinRequests", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_IsMember(t *testing.T) {
	svc, teams, _ := newTeamService()
	ctx := context.Background()

	teams.On("GetMember", ctx, "t1", "admin").Return(&team.Member{UserID: "admin"}, nil)
	teams.On("GetMember", ctx, "t1", "bob").Return(nil, repository.ErrNotFound)

	ok, err := svc.IsMember(ctx, "t1", "admin")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = svc.IsMember(ctx, "t1", "bob")
	require.NoError(t, err)
	require.False(t, ok)
}
