package transport

import (
	"net/http"

	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/domain/team"
	"github.com/go-chi/chi/v5"
)

type createTeamRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type inviteRequest struct {
	Email string `json:"email"`
}

type manageRequestBody struct {
	Action string `json:"action"`
}

type createProjectRequest struct {
	TeamID      string `json:"teamId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req createTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	t, err := s.svc.Teams.Create(r.Context(), actorID, team.CreateRequest{
		Name:        req.Name,
		Description: req.Description,
		Icon:        req.Icon,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	teams, err := s.svc.Teams.ListForUser(r.Context(), actorID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

func (s *Server) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	t, err := s.svc.Teams.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleListTeamProjects(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "id")
	if _, err := s.svc.Teams.Get(r.Context(), teamID); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	projects, err := s.svc.Projects.ListByTeam(r.Context(), teamID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleInvite(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req inviteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	t, err := s.svc.Teams.Invite(r.Context(), actorID, chi.URLParam(r, "id"), req.Email)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	t, err := s.svc.Teams.RequestJoin(r.Context(), actorID, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleManageRequest approves or denies a join request: {"action": "approve"|"deny"}.
func (s *Server) handleManageRequest(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req manageRequestBody
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	t, err := s.svc.Teams.ManageRequest(r.Context(), actorID, chi.URLParam(r, "id"), chi.URLParam(r, "userId"), req.Action)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req createProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	p, err := s.svc.Projects.Create(r.Context(), actorID, project.CreateRequest{
		TeamID:      req.TeamID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	actorID, ok := requireUser(w, r)
	if !ok {
		return
	}
	projects, err := s.svc.Projects.ListForUser(r.Context(), actorID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
