package board

import (
	"fmt"

	"github.com/ganot/taskboard/internal/apperr"
)

var (
	// ErrColumnNotFound indicates the column doesn't exist or belongs to another project.
	ErrColumnNotFound = fmt.Errorf("column %w", apperr.ErrNotFound)
	// ErrTaskNotFound indicates the task doesn't exist.
	ErrTaskNotFound = fmt.Errorf("task %w", apperr.ErrNotFound)
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = fmt.Errorf("project %w", apperr.ErrNotFound)
	// ErrCrossProject indicates a column and task from different projects.
	ErrCrossProject = fmt.Errorf("%w: column and task project mismatch", apperr.ErrInvalid)
	// ErrOnlyColumn indicates an attempt to delete a project's last column.
	ErrOnlyColumn = fmt.Errorf("%w: cannot delete the only column", apperr.ErrInvalid)
	// ErrInvalidInput indicates missing or malformed board input.
	ErrInvalidInput = fmt.Errorf("%w: invalid board input", apperr.ErrInvalid)
	// ErrConcurrentUpdate indicates another writer changed a column mid-operation.
	ErrConcurrentUpdate = fmt.Errorf("%w: column modified concurrently, retry the request", apperr.ErrConflict)
)
