package mcp

import (
	"context"
	"log/slog"

	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/task"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// BoardService defines board operations needed by MCP.
type BoardService interface {
	GetBoard(ctx context.Context, projectID string) (*board.Board, error)
	CreateTask(ctx context.Context, actorID string, req task.CreateRequest) (*task.Task, error)
	MoveTask(ctx context.Context, req board.MoveRequest) (map[string]board.Column, error)
	DeleteTask(ctx context.Context, actorID, taskID string) error
	CreateColumn(ctx context.Context, actorID, projectID, title string) (*board.Board, error)
	DeleteColumn(ctx context.Context, actorID, columnID string) (map[string]int, error)
	ReorderColumns(ctx context.Context, actorID, projectID string, ids []string) ([]string, error)
}

// TaskService resolves task titles for board views.
type TaskService interface {
	ListByProject(ctx context.Context, projectID string) ([]task.Task, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Board BoardService
	Tasks TaskService
}

// Config contains server configuration.
type Config struct {
	Services    Services
	Resolver    UserResolver
	AuthEnabled bool
	// DefaultUserID acts as the caller when auth is disabled and the request
	// names no user.
	DefaultUserID string
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	version := cfg.Version
	if version == "" {
		version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "taskboard",
		Version: version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	if cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(headerUserMiddleware(cfg.DefaultUserID))
	}
	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, cfg.Services, logger)

	return server
}
