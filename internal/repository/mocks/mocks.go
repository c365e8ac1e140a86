package mocks

import (
	"context"

	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/chat"
	"github.com/ganot/taskboard/internal/domain/notification"
	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/domain/team"
	"github.com/ganot/taskboard/internal/domain/user"
	"github.com/stretchr/testify/mock"
)

// BoardStore is a mock for board.Store. WithinTx runs fn against Tx.
type BoardStore struct {
	mock.Mock
	Tx *BoardTx
}

func (m *BoardStore) WithinTx(ctx context.Context, fn func(tx board.Tx) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m.Tx)
}

func (m *BoardStore) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	args := m.Called(ctx, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *BoardStore) ListColumns(ctx context.Context, projectID string) ([]board.Column, error) {
	args := m.Called(ctx, projectID)
	if cols, ok := args.Get(0).([]board.Column); ok {
		return cols, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BoardStore) GetColumn(ctx context.Context, id string) (*board.Column, error) {
	args := m.Called(ctx, id)
	if col, ok := args.Get(0).(*board.Column); ok {
		return col, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BoardStore) GetTaskRef(ctx context.Context, taskID string) (*board.TaskRef, error) {
	args := m.Called(ctx, taskID)
	if ref, ok := args.Get(0).(*board.TaskRef); ok {
		return ref, args.Error(1)
	}
	return nil, args.Error(1)
}

// BoardTx is a mock for board.Tx.
type BoardTx struct {
	mock.Mock
}

func (m *BoardTx) ProjectExists(ctx context.Context, projectID string) (bool, error) {
	args := m.Called(ctx, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *BoardTx) GetColumn(ctx context.Context, id string) (*board.Column, error) {
	args := m.Called(ctx, id)
	if col, ok := args.Get(0).(*board.Column); ok {
		// Hand out a copy so callers can mutate it freely.
		c := *col
		c.TaskIDs = append(board.TaskList{}, col.TaskIDs...)
		return &c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BoardTx) TaskInProject(ctx context.Context, taskID, projectID string) (bool, error) {
	args := m.Called(ctx, taskID, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *BoardTx) ColumnsForUpdate(ctx context.Context, projectID string) ([]board.Column, error) {
	args := m.Called(ctx, projectID)
	if cols, ok := args.Get(0).([]board.Column); ok {
		out := make([]board.Column, len(cols))
		for i, c := range cols {
			c.TaskIDs = append(board.TaskList{}, c.TaskIDs...)
			out[i] = c
		}
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BoardTx) CreateColumn(ctx context.Context, col *board.Column) error {
	args := m.Called(ctx, col)
	return args.Error(0)
}

func (m *BoardTx) UpdateColumn(ctx context.Context, col *board.Column) error {
	args := m.Called(ctx, col)
	return args.Error(0)
}

func (m *BoardTx) DeleteColumn(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *BoardTx) ColumnOrder(ctx context.Context, projectID string) ([]string, error) {
	args := m.Called(ctx, projectID)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *BoardTx) SetColumnOrderCache(ctx context.Context, projectID string, ids []string) error {
	args := m.Called(ctx, projectID, ids)
	return args.Error(0)
}

func (m *BoardTx) CreateTask(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *BoardTx) DeleteTask(ctx context.Context, taskID string) ([]string, error) {
	args := m.Called(ctx, taskID)
	if locs, ok := args.Get(0).([]string); ok {
		return locs, args.Error(1)
	}
	return nil, args.Error(1)
}

// TaskRepository is a mock for task.Repository.
type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) Get(ctx context.Context, id string) (*task.Task, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*task.Task); ok {
		c := *t
		return &c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]task.Task); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) Update(ctx context.Context, t *task.Task) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TaskRepository) AddComment(ctx context.Context, c *task.Comment) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *TaskRepository) ListComments(ctx context.Context, taskID string) ([]task.Comment, error) {
	args := m.Called(ctx, taskID)
	if list, ok := args.Get(0).([]task.Comment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TaskRepository) AddAttachment(ctx context.Context, a *task.Attachment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *TaskRepository) ListAttachments(ctx context.Context, taskID string) ([]task.Attachment, error) {
	args := m.Called(ctx, taskID)
	if list, ok := args.Get(0).([]task.Attachment); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// SearchRepository is a mock for task.SearchRepository.
type SearchRepository struct {
	mock.Mock
}

func (m *SearchRepository) Search(ctx context.Context, projectID, query string, opts task.SearchOptions) ([]task.SearchResult, error) {
	args := m.Called(ctx, projectID, query, opts)
	if results, ok := args.Get(0).([]task.SearchResult); ok {
		return results, args.Error(1)
	}
	return nil, args.Error(1)
}

// FileStore is a mock for task.FileStore, user.FileStore and board.FileRemover.
type FileStore struct {
	mock.Mock
}

func (m *FileStore) Store(ctx context.Context, name string, data []byte) (string, error) {
	args := m.Called(ctx, name, data)
	return args.String(0), args.Error(1)
}

func (m *FileStore) Exists(ctx context.Context, locator string) (bool, error) {
	args := m.Called(ctx, locator)
	return args.Bool(0), args.Error(1)
}

func (m *FileStore) Delete(ctx context.Context, locator string) error {
	args := m.Called(ctx, locator)
	return args.Error(0)
}

// UserRepository is a mock for user.Repository and team.Users.
type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]user.User); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

// TeamRepository is a mock for team.Repository.
type TeamRepository struct {
	mock.Mock
}

func (m *TeamRepository) Create(ctx context.Context, t *team.Team, adminID string) error {
	args := m.Called(ctx, t, adminID)
	return args.Error(0)
}

func (m *TeamRepository) Get(ctx context.Context, id string) (*team.Team, error) {
	args := m.Called(ctx, id)
	if t, ok := args.Get(0).(*team.Team); ok {
		c := *t
		c.JoinRequests = append([]string{}, t.JoinRequests...)
		return &c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TeamRepository) ListForUser(ctx context.Context, userID string) ([]team.Team, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]team.Team); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TeamRepository) GetMember(ctx context.Context, teamID, userID string) (*team.Member, error) {
	args := m.Called(ctx, teamID, userID)
	if member, ok := args.Get(0).(*team.Member); ok {
		return member, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TeamRepository) AddMember(ctx context.Context, teamID, userID string, role team.Role) error {
	args := m.Called(ctx, teamID, userID, role)
	return args.Error(0)
}

func (m *TeamRepository) SetJoinRequests(ctx context.Context, teamID string, userIDs []string) error {
	args := m.Called(ctx, teamID, userIDs)
	return args.Error(0)
}

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project, columns []board.Column) error {
	args := m.Called(ctx, proj, columns)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListByTeam(ctx context.Context, teamID string) ([]project.Project, error) {
	args := m.Called(ctx, teamID)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListForUser(ctx context.Context, userID string) ([]project.Project, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ProjectTeams is a mock for project.Teams.
type ProjectTeams struct {
	mock.Mock
}

func (m *ProjectTeams) Exists(ctx context.Context, teamID string) (bool, error) {
	args := m.Called(ctx, teamID)
	return args.Bool(0), args.Error(1)
}

func (m *ProjectTeams) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

// ChatRepository is a mock for chat.Repository.
type ChatRepository struct {
	mock.Mock
}

func (m *ChatRepository) CreateMessage(ctx context.Context, msg *chat.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *ChatRepository) ListMessages(ctx context.Context, projectID string, limit int) ([]chat.Message, error) {
	args := m.Called(ctx, projectID, limit)
	if list, ok := args.Get(0).([]chat.Message); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ChatRepository) CreateDirect(ctx context.Context, msg *chat.DirectMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *ChatRepository) ListConversation(ctx context.Context, userA, userB string, limit int) ([]chat.DirectMessage, error) {
	args := m.Called(ctx, userA, userB, limit)
	if list, ok := args.Get(0).([]chat.DirectMessage); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ChatRepository) ListDirectForUser(ctx context.Context, userID string, limit int) ([]chat.DirectMessage, error) {
	args := m.Called(ctx, userID, limit)
	if list, ok := args.Get(0).([]chat.DirectMessage); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// NotificationRepository is a mock for notification.Repository.
type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotificationRepository) Get(ctx context.Context, id string) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if n, ok := args.Get(0).(*notification.Notification); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NotificationRepository) ListForUser(ctx context.Context, userID string, limit int) ([]notification.Notification, error) {
	args := m.Called(ctx, userID, limit)
	if list, ok := args.Get(0).([]notification.Notification); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

// NotificationQueue is a mock for notification.Queue.
type NotificationQueue struct {
	mock.Mock
}

func (m *NotificationQueue) Push(ctx context.Context, notificationID string, channels []string) error {
	args := m.Called(ctx, notificationID, channels)
	return args.Error(0)
}

// NotificationSender is a mock for notification.Sender.
type NotificationSender struct {
	mock.Mock
	Name string
}

func (m *NotificationSender) Channel() string { return m.Name }

func (m *NotificationSender) Send(ctx context.Context, n *notification.Notification, title, body string) error {
	args := m.Called(ctx, n, title, body)
	return args.Error(0)
}

// Notifier is a mock for the board and task notifier dependencies.
type Notifier struct {
	mock.Mock
}

func (m *Notifier) Enqueue(ctx context.Context, req notification.Request) {
	m.Called(ctx, req)
}

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.ActivityEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.ActivityEntry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRecorder is a mock for the services' activity dependency.
type ActivityRecorder struct {
	mock.Mock
}

func (m *ActivityRecorder) Record(ctx context.Context, entry *activity.ActivityEntry) {
	m.Called(ctx, entry)
}

// Publisher is a mock for the realtime event publisher.
type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(room, eventType string, data any) {
	m.Called(room, eventType, data)
}
