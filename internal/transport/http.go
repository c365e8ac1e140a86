package transport

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

// Config configures the HTTP surface.
type Config struct {
	Services Services
	// Auth authenticates API requests. Nil falls back to HeaderAuth.
	Auth func(http.Handler) http.Handler
	// TokenSecret, when set, makes registration return a signed token.
	TokenSecret []byte
	TokenTTL    time.Duration
	CORSOrigins []string
	Realtime    RealtimeServer
	// Files serves stored attachments under FilesPrefix.
	Files       http.Handler
	FilesPrefix string
	// MCP is mounted at /mcp behind Auth when set.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server holds the handler dependencies.
type Server struct {
	svc         Services
	realtime    RealtimeServer
	tokenSecret []byte
	tokenTTL    time.Duration
	logger      *slog.Logger
}

// NewServer creates the HTTP router with middleware.
func NewServer(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	auth := cfg.Auth
	if auth == nil {
		auth = HeaderAuth
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}

	srv := &Server{
		svc:         cfg.Services,
		realtime:    cfg.Realtime,
		tokenSecret: cfg.TokenSecret,
		tokenTTL:    ttl,
		logger:      logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Post("/users", srv.handleRegister)
	if cfg.Files != nil && cfg.FilesPrefix != "" {
		prefix := strings.TrimSuffix(cfg.FilesPrefix, "/")
		r.Handle(prefix+"/*", cfg.Files)
	}

	r.Group(func(r chi.Router) {
		r.Use(auth)

		if cfg.MCP != nil {
			r.Handle("/mcp", cfg.MCP)
			r.Handle("/mcp/*", cfg.MCP)
		}

		r.Get("/data", srv.handleAllData)
		r.Get("/users", srv.handleListUsers)
		r.Get("/users/me", srv.handleMe)
		r.Patch("/users/me", srv.handleUpdateMe)
		r.Get("/users/{id}", srv.handleGetUser)

		r.Route("/teams", func(r chi.Router) {
			r.Post("/", srv.handleCreateTeam)
			r.Get("/", srv.handleListTeams)
			r.Get("/{id}", srv.handleGetTeam)
			r.Get("/{id}/projects", srv.handleListTeamProjects)
			r.Post("/{id}/invite", srv.handleInvite)
			r.Post("/{id}/join", srv.handleJoin)
			r.Post("/{id}/requests/{userId}", srv.handleManageRequest)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Post("/", srv.handleCreateProject)
			r.Get("/", srv.handleListProjects)
			r.Get("/{id}", srv.handleGetProject)
			r.Get("/{id}/board", srv.handleGetBoard)
			r.Get("/{id}/activity", srv.handleActivity)
			r.Get("/{id}/search", srv.handleSearch)
			r.Get("/{id}/chat", srv.handleListChat)
			r.Post("/{id}/chat", srv.handlePostChat)
		})

		r.Route("/columns", func(r chi.Router) {
			r.Post("/", srv.handleCreateColumn)
			r.Put("/move", srv.handleReorderColumns)
			r.Patch("/{id}", srv.handleRenameColumn)
			r.Delete("/{id}", srv.handleDeleteColumn)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", srv.handleCreateTask)
			r.Get("/{id}", srv.handleGetTask)
			r.Patch("/{id}", srv.handleUpdateTask)
			r.Delete("/{id}", srv.handleDeleteTask)
			r.Put("/{id}/move", srv.handleMoveTask)
			r.Get("/{id}/comments", srv.handleListComments)
			r.Post("/{id}/comments", srv.handleAddComment)
			r.Post("/{id}/attachments", srv.handleUploadAttachment)
		})

		r.Get("/messages/{userId}", srv.handleConversation)
		r.Post("/messages/{userId}", srv.handleSendMessage)

		r.Get("/notifications", srv.handleListNotifications)
		r.Post("/notifications/{id}/read", srv.handleMarkRead)

		r.Get("/ws/projects/{id}", srv.handleProjectSocket)
		r.Get("/ws/me", srv.handleUserSocket)
	})

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", UserIDHeader, "Mcp-Session-Id"},
		ExposedHeaders:   []string{"Mcp-Session-Id"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// requestLogger logs one line per request with its status and duration.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.DebugContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
