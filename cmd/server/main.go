package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/ganot/taskboard/internal/config"
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
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logWriter := io.Writer(os.Stdout)
	if cfg.Log.Path != "" {
		fileWriter, err := newLogFileWriter(cfg.Log.Path, cfg.Log.MaxBytes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer fileWriter.Close()
			logWriter = io.MultiWriter(os.Stdout, fileWriter)
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		return fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	if err := db.RunMigrations(); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	store, err := files.NewLocalStore(cfg.Files.Dir, cfg.Files.Prefix)
	if err != nil {
		return fmt.Errorf("open file store: %w", err)
	}

	hub := realtime.NewHub(logger)
	hub.AllowOrigins(cfg.CORS.Origins...)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		hub.Run(ctx)
	}()

	userRepo := sqlite.NewUserRepository(db)
	users := user.NewService(userRepo, store, logger)
	teams := team.NewService(sqlite.NewTeamRepository(db), userRepo, logger)
	projects := project.NewService(sqlite.NewProjectRepository(db), teams, logger)
	activities := activity.NewService(sqlite.NewActivityRepository(db), logger)

	senders := []notification.Sender{
		notification.NewLogSender(notification.ChannelPush, logger),
		notification.NewLogSender(notification.ChannelEmail, logger),
		notification.NewLogSender(notification.ChannelSMS, logger),
	}
	var queue notification.Queue
	var redisQueue *notify.RedisQueue
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		redisQueue = notify.NewRedisQueue(client, cfg.Redis.Key)
		queue = redisQueue
	}
	notifications := notification.NewService(sqlite.NewNotificationRepository(db), queue, users, senders, logger)
	if redisQueue != nil {
		worker := notify.NewWorker(redisQueue, notifications, logger)
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.Run(ctx)
		}()
	}

	boards := board.NewService(sqlite.NewBoardStore(db), notifications, store, activities, hub, logger)
	tasks := task.NewService(sqlite.NewTaskRepository(db), sqlite.NewSearchRepository(db), store, notifications, activities, hub, logger)
	chats := chat.NewService(sqlite.NewChatRepository(db), hub, logger)

	secret := []byte(cfg.Auth.Secret)
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{Board: boards, Tasks: tasks},
		Resolver: mcp.UserResolverFunc(func(_ context.Context, token string) (string, error) {
			return transport.ParseToken(secret, token)
		}),
		AuthEnabled: cfg.Auth.Enabled,
		Version:     version,
		Logger:      logger,
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: 30 * time.Minute},
	)

	httpCfg := transport.Config{
		Services: transport.Services{
			Board:         boards,
			Tasks:         tasks,
			Teams:         teams,
			Projects:      projects,
			Users:         users,
			Chat:          chats,
			Notifications: notifications,
			Activity:      activities,
		},
		CORSOrigins: cfg.CORS.Origins,
		Realtime:    hub,
		Files:       store.Handler(),
		FilesPrefix: store.Prefix(),
		MCP:         mcpHandler,
		Logger:      logger,
	}
	if cfg.Auth.Secret != "" {
		httpCfg.TokenSecret = secret
	}
	if cfg.Auth.Enabled {
		httpCfg.Auth = transport.JWTAuth(secret)
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           transport.NewServer(httpCfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Addr(), "auth", cfg.Auth.Enabled, "queue", redisQueue != nil)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	var listenErr error
	select {
	case listenErr = <-errCh:
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}

	cancel()
	wg.Wait()
	if listenErr != nil {
		return fmt.Errorf("listen: %w", listenErr)
	}
	return nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// logFileWriter appends to a file and keeps it under maxBytes by dropping the
// oldest part once the cap is crossed.
type logFileWriter struct {
	file     *os.File
	maxBytes int64
	keep     int64
	mu       sync.Mutex
}

func newLogFileWriter(path string, maxBytes int64) (*logFileWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	w := &logFileWriter{file: file, maxBytes: maxBytes, keep: maxBytes * 5 / 6}
	if err := w.truncateIfNeeded(); err != nil {
		file.Close()
		return nil, err
	}
	return w, nil
}

func (w *logFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.file.Write(p)
	if err != nil {
		return n, err
	}
	return n, w.truncateIfNeeded()
}

func (w *logFileWriter) Close() error {
	return w.file.Close()
}

func (w *logFileWriter) truncateIfNeeded() error {
	info, err := w.file.Stat()
	if err != nil {
		return err
	}
	size := info.Size()
	if size <= w.maxBytes {
		return nil
	}

	buf := make([]byte, w.keep)
	n, err := w.file.ReadAt(buf, size-w.keep)
	if err != nil && err != io.EOF {
		return err
	}
	if err := w.file.Truncate(0); err != nil {
		return err
	}
	if _, err := w.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	_, err = w.file.Write(buf[:n])
	return err
}
