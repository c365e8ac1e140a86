package transport

import (
	"context"
	"net/http"

	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/chat"
	"github.com/ganot/taskboard/internal/domain/notification"
	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/domain/team"
	"github.com/ganot/taskboard/internal/domain/user"
)

// BoardService defines the column and placement operations used by handlers.
type BoardService interface {
	GetBoard(ctx context.Context, projectID string) (*board.Board, error)
	CreateTask(ctx context.Context, actorID string, req task.CreateRequest) (*task.Task, error)
	MoveTask(ctx context.Context, req board.MoveRequest) (map[string]board.Column, error)
	DeleteTask(ctx context.Context, actorID, taskID string) error
	CreateColumn(ctx context.Context, actorID, projectID, title string) (*board.Board, error)
	RenameColumn(ctx context.Context, actorID, columnID, title string) (*board.Column, error)
	DeleteColumn(ctx context.Context, actorID, columnID string) (map[string]int, error)
	ReorderColumns(ctx context.Context, actorID, projectID string, ids []string) ([]string, error)
}

// TaskService defines task field, comment and attachment operations.
type TaskService interface {
	Get(ctx context.Context, id string) (*task.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]task.Task, error)
	Update(ctx context.Context, actorID, id string, req task.UpdateRequest) (*task.Task, error)
	AddComment(ctx context.Context, authorID, taskID, content string) (*task.Comment, error)
	ListComments(ctx context.Context, taskID string) ([]task.Comment, error)
	AddAttachment(ctx context.Context, actorID, taskID, name string, data []byte) (*task.Attachment, error)
	Search(ctx context.Context, projectID, query string, opts task.SearchOptions) ([]task.SearchResult, error)
}

// TeamService defines team and membership operations.
type TeamService interface {
	Create(ctx context.Context, actorID string, req team.CreateRequest) (*team.Team, error)
	Get(ctx context.Context, id string) (*team.Team, error)
	ListForUser(ctx context.Context, userID string) ([]team.Team, error)
	Invite(ctx context.Context, actorID, teamID, email string) (*team.Team, error)
	RequestJoin(ctx context.Context, actorID, teamID string) (*team.Team, error)
	ManageRequest(ctx context.Context, actorID, teamID, userID, action string) (*team.Team, error)
}

// ProjectService defines project operations.
type ProjectService interface {
	Create(ctx context.Context, actorID string, req project.CreateRequest) (*project.Project, error)
	Get(ctx context.Context, id string) (*project.Project, error)
	ListByTeam(ctx context.Context, teamID string) ([]project.Project, error)
	ListForUser(ctx context.Context, userID string) ([]project.Project, error)
}

// UserService defines user operations.
type UserService interface {
	Register(ctx context.Context, req user.RegisterRequest) (*user.User, error)
	Get(ctx context.Context, id string) (*user.User, error)
	List(ctx context.Context) ([]user.User, error)
	UpdateProfile(ctx context.Context, userID string, req user.UpdateProfileRequest) (*user.User, error)
}

// ChatService defines project chat and direct message operations.
type ChatService interface {
	Post(ctx context.Context, authorID, projectID, content string) (*chat.Message, error)
	List(ctx context.Context, projectID string, limit int) ([]chat.Message, error)
	Send(ctx context.Context, senderID, receiverID, content string) (*chat.DirectMessage, error)
	Conversation(ctx context.Context, userA, userB string, limit int) ([]chat.DirectMessage, error)
	DirectForUser(ctx context.Context, userID string, limit int) ([]chat.DirectMessage, error)
}

// NotificationService defines inbox operations.
type NotificationService interface {
	ListForUser(ctx context.Context, userID string, limit int) ([]notification.Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
}

// ActivityService defines the project feed.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// RealtimeServer subscribes websocket connections to rooms.
type RealtimeServer interface {
	Serve(w http.ResponseWriter, r *http.Request, room, userID string) error
}

// Services groups the domain services exposed over HTTP.
type Services struct {
	Board         BoardService
	Tasks         TaskService
	Teams         TeamService
	Projects      ProjectService
	Users         UserService
	Chat          ChatService
	Notifications NotificationService
	Activity      ActivityService
}
