package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/taskboard/internal/apperr"
	"github.com/ganot/taskboard/internal/domain/board"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. It returns nil for faults
// that carry no error kind.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, board.ErrTaskNotFound):
		return &APIError{Code: "TASK_NOT_FOUND", Message: "task not found", RecoveryHint: "Call get_board for current task ids"}
	case errors.Is(err, board.ErrColumnNotFound):
		return &APIError{Code: "COLUMN_NOT_FOUND", Message: "column not found", RecoveryHint: "Call get_board for current column ids"}
	case errors.Is(err, board.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check the project id"}
	case errors.Is(err, board.ErrCrossProject):
		return &APIError{Code: "CROSS_PROJECT", Message: "column belongs to another project", RecoveryHint: "Pick a column of the task's own project"}
	case errors.Is(err, board.ErrOnlyColumn):
		return &APIError{Code: "ONLY_COLUMN", Message: "cannot delete the only column", RecoveryHint: "Create another column first"}
	case errors.Is(err, board.ErrConcurrentUpdate):
		return &APIError{Code: "CONFLICT", Message: "board modified concurrently", RecoveryHint: "Re-read the board and retry"}
	}

	switch apperr.Kind(err) {
	case apperr.ErrNotFound:
		return &APIError{Code: "NOT_FOUND", Message: err.Error()}
	case apperr.ErrInvalid:
		return &APIError{Code: "INVALID_INPUT", Message: err.Error(), RecoveryHint: "Check required arguments"}
	case apperr.ErrForbidden:
		return &APIError{Code: "FORBIDDEN", Message: err.Error()}
	case apperr.ErrConflict:
		return &APIError{Code: "CONFLICT", Message: err.Error(), RecoveryHint: "Re-read and retry"}
	}
	return nil
}
