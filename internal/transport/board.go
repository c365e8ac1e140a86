package transport

import (
	"net/http"

	"github.com/ganot/taskboard/internal/domain/board"
	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/domain/task"
	"github.com/go-chi/chi/v5"
)

type moveTaskRequest struct {
	ToColumnID string `json:"toColumnId"`
	Position   *int   `json:"position"`
}

type moveTaskResponse struct {
	Columns map[string]board.Column `json:"columns"`
}

type createColumnRequest struct {
	ProjectID string `json:"projectId"`
	Title     string `json:"title"`
}

type renameColumnRequest struct {
	NewTitle string `json:"newTitle"`
}

type deleteColumnResponse struct {
	ColumnOrder map[string]int `json:"columnOrder"`
}

type reorderColumnsRequest struct {
	ProjectID string   `json:"projectId"`
	NewOrder  []string `json:"newOrder"`
}

type reorderColumnsResponse struct {
	ProjectID   string   `json:"projectId"`
	ColumnOrder []string `json:"columnOrder"`
}

type boardResponse struct {
	Project     *project.Project        `json:"project"`
	Columns     map[string]board.Column `json:"columns"`
	ColumnOrder []string                `json:"columnOrder"`
	Tasks       map[string]task.Task    `json:"tasks"`
}

func (s *Server) handleMoveTask(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req moveTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	if req.ToColumnID == "" {
		writeError(w, r, s.logger, board.ErrInvalidInput)
		return
	}

	cols, err := s.svc.Board.MoveTask(r.Context(), board.MoveRequest{
		TaskID:     chi.URLParam(r, "id"),
		ToColumnID: req.ToColumnID,
		Position:   req.Position,
		ActorID:    actorID,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, moveTaskResponse{Columns: cols})
}

func (s *Server) handleCreateColumn(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req createColumnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	b, err := s.svc.Board.CreateColumn(r.Context(), actorID, req.ProjectID, req.Title)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleRenameColumn(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req renameColumnRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	col, err := s.svc.Board.RenameColumn(r.Context(), actorID, chi.URLParam(r, "id"), req.NewTitle)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, col)
}

func (s *Server) handleDeleteColumn(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	order, err := s.svc.Board.DeleteColumn(r.Context(), actorID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, deleteColumnResponse{ColumnOrder: order})
}

func (s *Server) handleReorderColumns(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req reorderColumnsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	order, err := s.svc.Board.ReorderColumns(r.Context(), actorID, req.ProjectID, req.NewOrder)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, reorderColumnsResponse{ProjectID: req.ProjectID, ColumnOrder: order})
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	p, err := s.svc.Projects.Get(r.Context(), projectID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	b, err := s.svc.Board.GetBoard(r.Context(), projectID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	tasks, err := s.svc.Tasks.ListByProject(r.Context(), projectID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	byID := make(map[string]task.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	writeJSON(w, http.StatusOK, boardResponse{
		Project:     p,
		Columns:     b.Columns,
		ColumnOrder: b.ColumnOrder,
		Tasks:       byID,
	})
}
