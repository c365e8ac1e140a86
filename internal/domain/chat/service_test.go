package chat_test

import (
	"context"
	"testing"

	"github.com/ganot/taskboard/internal/domain/chat"
	"github.com/ganot/taskboard/internal/repository"
	"github.com/ganot/taskboard/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestService_Post(t *testing.T) {
	repo := new(mocks.ChatRepository)
	events := new(mocks.Publisher)
	svc := chat.NewService(repo, events, nil)
	ctx := context.Background()

	repo.On("CreateMessage", ctx, mock.MatchedBy(func(m *chat.Message) bool {
		return m.ProjectID == "p1" && m.Content == "hello"
	})).Return(nil)
	events.On("Publish", "p1", chat.EventChatMessage, mock.Anything).Return()

	m, err := svc.Post(ctx, "u1", "p1", " hello ")
	require.NoError(t, err)
	require.Equal(t, "u1", m.AuthorID)
	events.AssertExpectations(t)

	_, err = svc.Post(ctx, "u1", "p1", "  ")
	require.ErrorIs(t, err, chat.ErrEmptyContent)
}

func TestService_PostErrors(t *testing.T) {
	repo := new(mocks.ChatRepository)
	svc := chat.NewService(repo, nil, nil)
	ctx := context.Background()

	repo.On("CreateMessage", ctx, mock.MatchedBy(func(m *chat.Message) bool { return m.ProjectID == "missing" })).
		Return(repository.ErrNotFound)
	repo.On("CreateMessage", ctx, mock.MatchedBy(func(m *chat.Message) bool { return m.ProjectID == "p1" })).
		Return(repository.ErrForeignKeyViolation)

	_, err := svc.Post(ctx, "u1", "missing", "hi")
	require.ErrorIs(t, err, chat.ErrProjectNotFound)

	_, err = svc.Post(ctx, "ghost", "p1", "hi")
	require.ErrorIs(t, err, chat.ErrUserNotFound)
}

func TestService_SendPublishesToBothUsers(t *testing.T) {
	repo := new(mocks.ChatRepository)
	events := new(mocks.Publisher)
	svc := chat.NewService(repo, events, nil)
	ctx := context.Background()

	repo.On("CreateDirect", ctx, mock.Anything).Return(nil)
	events.On("Publish", chat.UserRoom("u2"), chat.EventDirectMessage, mock.Anything).Return().Once()
	events.On("Publish", chat.UserRoom("u1"), chat.EventDirectMessage, mock.Anything).Return().Once()

	m, err := svc.Send(ctx, "u1", "u2", "ping")
	require.NoError(t, err)
	require.Equal(t, "u2", m.ReceiverID)
	events.AssertExpectations(t)

	repo2 := new(mocks.ChatRepository)
	repo2.On("CreateDirect", ctx, mock.Anything).Return(repository.ErrForeignKeyViolation)
	_, err = chat.NewService(repo2, nil, nil).Send(ctx, "u1", "ghost", "ping")
	require.ErrorIs(t, err, chat.ErrUserNotFound)
}

func TestService_ListDefaultsLimit(t *testing.T) {
	repo := new(mocks.ChatRepository)
	svc := chat.NewService(repo, nil, nil)
	ctx := context.Background()

	repo.On("ListMessages", ctx, "p1", 200).Return([]chat.Message{}, nil)
	repo.On("ListConversation", ctx, "u1", "u2", 5).Return([]chat.DirectMessage{}, nil)

	_, err := svc.List(ctx, "p1", 0)
	require.NoError(t, err)
	_, err = svc.Conversation(ctx, "u1", "u2", 5)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}
