package transport

import (
	"net/http"

	"github.com/ganot/taskboard/internal/domain/activity"
	"github.com/ganot/taskboard/internal/domain/chat"
	"github.com/go-chi/chi/v5"
)

type messageRequest struct {
	Content string `json:"content"`
}

func (s *Server) handlePostChat(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	m, err := s.svc.Chat.Post(r.Context(), actorID, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleListChat(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	if _, err := s.svc.Projects.Get(r.Context(), projectID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	messages, err := s.svc.Chat.List(r.Context(), projectID, limit)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req messageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	m, err := s.svc.Chat.Send(r.Context(), actorID, chi.URLParam(r, "userId"), req.Content)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	messages, err := s.svc.Chat.Conversation(r.Context(), actorID, chi.URLParam(r, "userId"), limit)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, messages)
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	items, err := s.svc.Notifications.ListForUser(r.Context(), actorID, limit)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := s.svc.Notifications.MarkRead(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	if _, err := s.svc.Projects.Get(r.Context(), projectID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	opts := activity.ListActivityOptions{ProjectID: projectID, Limit: limit, Offset: offset}
	if taskID := r.URL.Query().Get("taskId"); taskID != "" {
		opts.TaskID = &taskID
	}
	if typ := r.URL.Query().Get("type"); typ != "" {
		t := activity.ActivityType(typ)
		opts.ActivityType = &t
	}
	entries, err := s.svc.Activity.GetRecentActivity(r.Context(), opts)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleProjectSocket(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	projectID := chi.URLParam(r, "id")
	if _, err := s.svc.Projects.Get(r.Context(), projectID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	s.serveSocket(w, r, projectID, actorID)
}

func (s *Server) handleUserSocket(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	s.serveSocket(w, r, chat.UserRoom(actorID), actorID)
}

func (s *Server) serveSocket(w http.ResponseWriter, r *http.Request, room, userID string) {
	if s.realtime == nil {
		writeMessage(w, http.StatusNotImplemented, "realtime events disabled")
		return
	}
	// The upgrader has already answered the client when Serve fails.
	if err := s.realtime.Serve(w, r, room, userID); err != nil {
		s.logger.WarnContext(r.Context(), "websocket upgrade failed", "room", room, "error", err)
	}
}
