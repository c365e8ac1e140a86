package task

import (
	"fmt"

	"github.com/ganot/taskboard/internal/apperr"
)

var (
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = fmt.Errorf("task %w", apperr.ErrNotFound)
	// ErrUserNotFound indicates an assignee or author doesn't exist.
	ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)
	// ErrInvalidInput indicates invalid task input.
	ErrInvalidInput = fmt.Errorf("%w: invalid task input", apperr.ErrInvalid)
	// ErrInvalidPriority indicates a priority outside low/medium/high.
	ErrInvalidPriority = fmt.Errorf("%w: priority must be low, medium or high", apperr.ErrInvalid)
)
