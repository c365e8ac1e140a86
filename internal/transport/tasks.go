package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ganot/taskboard/internal/apperr"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/go-chi/chi/v5"
)

const maxUploadBytes = 32 << 20

type createTaskRequest struct {
	ProjectID   string        `json:"projectId"`
	ColumnID    string        `json:"columnId"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	DueDate     *time.Time    `json:"dueDate"`
	Priority    task.Priority `json:"priority"`
	Tags        []string      `json:"tags"`
	Weight      *int          `json:"weight"`
	Completed   bool          `json:"completed"`
	AssigneeIDs []string      `json:"assigneeIds"`
}

// updateTaskRequest distinguishes an absent dueDate from an explicit null.
type updateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	DueDate     json.RawMessage `json:"dueDate"`
	Priority    *task.Priority  `json:"priority"`
	Tags        []string        `json:"tags"`
	Weight      *int            `json:"weight"`
	Completed   *bool           `json:"completed"`
	AssigneeIDs []string        `json:"assigneeIds"`
}

func (u updateTaskRequest) toDomain() (task.UpdateRequest, error) {
	req := task.UpdateRequest{
		Title:       u.Title,
		Description: u.Description,
		Priority:    u.Priority,
		Tags:        u.Tags,
		Weight:      u.Weight,
		Completed:   u.Completed,
		AssigneeIDs: u.AssigneeIDs,
	}
	switch string(u.DueDate) {
	case "":
	case "null":
		req.ClearDue = true
	default:
		var due time.Time
		if err := json.Unmarshal(u.DueDate, &due); err != nil {
			return task.UpdateRequest{}, fmt.Errorf("%w: dueDate must be an RFC 3339 timestamp", apperr.ErrInvalid)
		}
		req.DueDate = &due
	}
	return req, nil
}

type commentRequest struct {
	Content string `json:"content"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	t, err := s.svc.Board.CreateTask(r.Context(), actorID, task.CreateRequest{
		ProjectID:   req.ProjectID,
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Tags:        req.Tags,
		Weight:      req.Weight,
		Completed:   req.Completed,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Tasks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var body updateTaskRequest
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	req, err := body.toDomain()
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	t, err := s.svc.Tasks.Update(r.Context(), actorID, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := s.svc.Board.DeleteTask(r.Context(), actorID, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := s.svc.Tasks.ListComments(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (s *Server) handleAddComment(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	c, err := s.svc.Tasks.AddComment(r.Context(), actorID, chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// handleUploadAttachment accepts a multipart form with a single "file" part.
func (s *Server) handleUploadAttachment(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, s.logger, fmt.Errorf("%w: multipart field \"file\" required", apperr.ErrInvalid))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, s.logger, fmt.Errorf("%w: reading upload: %v", apperr.ErrInvalid, err))
		return
	}
	a, err := s.svc.Tasks.AddAttachment(r.Context(), actorID, chi.URLParam(r, "id"), header.Filename, data)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
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
	results, err := s.svc.Tasks.Search(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("q"), task.SearchOptions{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", apperr.ErrInvalid, name)
	}
	return n, nil
}
