// Package testserver runs the full HTTP stack against an in-memory database
// for end-to-end tests.
package testserver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/chat"
	"github.com/ganot/taskboard/internal/domain/notification"
	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/ganot/taskboard/internal/domain/team"
	"github.com/ganot/taskboard/internal/domain/user"
	"github.com/ganot/taskboard/internal/files"
	"github.com/ganot/taskboard/internal/mcp"
	"github.com/ganot/taskboard/internal/notify"
	"github.com/ganot/taskboard/internal/realtime"
	"github.com/ganot/taskboard/internal/sqlite"
	"github.com/ganot/taskboard/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// Secret signs the tokens the server issues and accepts.
var Secret = []byte("testserver-secret")

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Hub    *realtime.Hub
	Queue  *notify.RedisQueue
}

// New starts a server with JWT auth, the MCP endpoint and a notification
// worker draining a miniredis queue.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	store, err := files.NewLocalStore(t.TempDir(), "/files")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	hub := realtime.NewHub(nil)
	hub.AllowOrigins("*")
	go hub.Run(ctx)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	queue := notify.NewRedisQueue(client, "notifications:queue")

	userRepo := sqlite.NewUserRepository(db)
	users := user.NewService(userRepo, store, nil)
	teams := team.NewService(sqlite.NewTeamRepository(db), userRepo, nil)
	activities := activity.NewService(sqlite.NewActivityRepository(db), nil)
	notifications := notification.NewService(sqlite.NewNotificationRepository(db), queue, users, nil, nil)
	go notify.NewWorker(queue, notifications, nil).Run(ctx)

	boards := board.NewService(sqlite.NewBoardStore(db), notifications, store, activities, hub, nil)
	tasks := task.NewService(sqlite.NewTaskRepository(db), sqlite.NewSearchRepository(db), store, notifications, activities, hub, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{Board: boards, Tasks: tasks},
		Resolver: mcp.UserResolverFunc(func(_ context.Context, token string) (string, error) {
			return transport.ParseToken(Secret, token)
		}),
		AuthEnabled: true,
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)

	handler := transport.NewServer(transport.Config{
		Services: transport.Services{
			Board:         boards,
			Tasks:         tasks,
			Teams:         teams,
			Projects:      project.NewService(sqlite.NewProjectRepository(db), teams, nil),
			Users:         users,
			Chat:          chat.NewService(sqlite.NewChatRepository(db), hub, nil),
			Notifications: notifications,
			Activity:      activities,
		},
		Auth:        transport.JWTAuth(Secret),
		TokenSecret: Secret,
		CORSOrigins: []string{"*"},
		Realtime:    hub,
		Files:       store.Handler(),
		FilesPrefix: store.Prefix(),
		MCP:         mcpHandler,
	})
	server := httptest.NewServer(handler)

	t.Cleanup(func() {
		server.Close()
		cancel()
		_ = client.Close()
		_ = db.Close()
	})

	return &TestServer{Server: server, DB: db, Hub: hub, Queue: queue}
}

// Token issues a bearer token for userID.
func (ts *TestServer) Token(t *testing.T, userID string) string {
	t.Helper()
	token, err := transport.IssueToken(Secret, userID, time.Hour)
	require.NoError(t, err)
	return token
}

// MCPClient opens an MCP session over streamable HTTP as the holder of token.
func (ts *TestServer) MCPClient(t *testing.T, token string) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearerTransport{token: token}},
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })
	return cs
}

type bearerTransport struct {
	token string
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+b.token)
	return http.DefaultTransport.RoundTrip(req)
}
