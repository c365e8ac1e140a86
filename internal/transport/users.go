package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ganot/taskboard/internal/apperr"
	"github.com/ganot/taskboard/internal/domain/user"
	"github.com/go-chi/chi/v5"
)

type registerRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatarUrl"`
}

type registerResponse struct {
	User  *user.User `json:"user"`
	Token string     `json:"token,omitempty"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	u, err := s.svc.Users.Register(r.Context(), user.RegisterRequest{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}

	resp := registerResponse{User: u}
	if len(s.tokenSecret) > 0 {
		if resp.Token, err = IssueToken(s.tokenSecret, u.ID, s.tokenTTL); err != nil {
			writeError(w, r, s.logger, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	u, err := s.svc.Users.Get(r.Context(), userID)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// handleUpdateMe accepts JSON, or multipart form fields name and phone with
// an optional "avatar" file.
func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req user.UpdateProfileRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var err error
		if req, err = parseProfileForm(w, r); err != nil {
			writeError(w, r, s.logger, err)
			return
		}
	} else {
		var body updateProfileRequest
		if err := decodeJSON(r, &body); err != nil {
			writeError(w, r, s.logger, err)
			return
		}
		req = user.UpdateProfileRequest{Name: body.Name, Phone: body.Phone}
	}

	u, err := s.svc.Users.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func parseProfileForm(w http.ResponseWriter, r *http.Request) (user.UpdateProfileRequest, error) {
	var req user.UpdateProfileRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return req, fmt.Errorf("%w: malformed form: %v", apperr.ErrInvalid, err)
	}
	if v, ok := r.MultipartForm.Value["name"]; ok && len(v) > 0 {
		req.Name = &v[0]
	}
	if v, ok := r.MultipartForm.Value["phone"]; ok && len(v) > 0 {
		req.Phone = &v[0]
	}

	file, header, err := r.FormFile("avatar")
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil
	}
	if err != nil {
		return req, fmt.Errorf("%w: reading avatar: %v", apperr.ErrInvalid, err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return req, fmt.Errorf("%w: reading avatar: %v", apperr.ErrInvalid, err)
	}
	req.Avatar = &user.Avatar{Name: header.Filename, Data: data}
	return req, nil
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.svc.Users.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Users.List(r.Context())
	if err != nil {
		writeError(w, r, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
