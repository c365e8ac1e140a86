package transport

import (
	"net/http"

	"github.com/ganot/taskboard/internal/domain/chat"
	"github.com/ganot/taskboard/internal/domain/project"
	"github.com/ganot/taskboard/internal/domain/team"
	"github.com/ganot/taskboard/internal/domain/user"
)

// bootstrapLimit caps the direct messages returned by /data.
const bootstrapLimit = 500

// bootstrapResponse is everything a client needs on first load, keyed by id.
type bootstrapResponse struct {
	Users          map[string]user.User          `json:"users"`
	Teams          map[string]team.Team          `json:"teams"`
	Projects       map[string]project.Project    `json:"projects"`
	DirectMessages map[string]chat.DirectMessage `json:"directMessages"`
}

// handleAllData returns the caller's teams and projects, the users they share
// a team or a conversation with, and their latest direct messages.
func (s *Server) handleAllData(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	teams, err := s.svc.Teams.ListForUser(ctx, userID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	projects, err := s.svc.Projects.ListForUser(ctx, userID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	dms, err := s.svc.Chat.DirectForUser(ctx, userID, bootstrapLimit)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	users, err := s.svc.Users.List(ctx)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	resp := bootstrapResponse{
		Users:          map[string]user.User{},
		Teams:          make(map[string]team.Team, len(teams)),
		Projects:       make(map[string]project.Project, len(projects)),
		DirectMessages: make(map[string]chat.DirectMessage, len(dms)),
	}
	visible := map[string]bool{userID: true}
	for _, t := range teams {
		resp.Teams[t.ID] = t
		for _, m := range t.Members {
			visible[m.UserID] = true
		}
	}
	for _, p := range projects {
		resp.Projects[p.ID] = p
	}
	for _, dm := range dms {
		resp.DirectMessages[dm.ID] = dm
		visible[dm.SenderID] = true
		visible[dm.ReceiverID] = true
	}
	for _, u := range users {
		if visible[u.ID] {
			resp.Users[u.ID] = u
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
