package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ganot/taskboard/internal/apperr"
	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

// errorBody is the JSON shape of every failed response.
type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// statusFor maps an error kind to its HTTP status.
func statusFor(err error) int {
	switch apperr.Kind(err) {
	case apperr.ErrNotFound:
		return http.StatusNotFound
	case apperr.ErrInvalid:
		return http.StatusBadRequest
	case apperr.ErrForbidden:
		return http.StatusForbidden
	case apperr.ErrConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// writeError writes err as JSON. Faults without a kind are logged and hidden
// behind a generic message.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := statusFor(err)
	body := errorBody{Error: err.Error(), RequestID: middleware.GetReqID(r.Context())}
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", body.RequestID,
			"error", err,
		)
		body.Error = "internal server error"
	}
	writeJSON(w, status, body)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeJSON reads a single JSON object from the request body. Malformed
// bodies are reported as validation errors.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body required", apperr.ErrInvalid)
		}
		return fmt.Errorf("%w: malformed request body: %v", apperr.ErrInvalid, err)
	}
	return nil
}
