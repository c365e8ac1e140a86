package project

import (
	"fmt"

	"github.com/ganot/taskboard/internal/apperr"
)

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = fmt.Errorf("project %w", apperr.ErrNotFound)
	// ErrTeamNotFound indicates the owning team doesn't exist.
	ErrTeamNotFound = fmt.Errorf("team %w", apperr.ErrNotFound)
	// ErrNotMember indicates the caller is not a member of the owning team.
	ErrNotMember = fmt.Errorf("%w: team membership required", apperr.ErrForbidden)
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = fmt.Errorf("%w: invalid project input", apperr.ErrInvalid)
)
