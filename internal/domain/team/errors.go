package team

import (
	"fmt"

	"github.com/ganot/taskboard/internal/apperr"
)

var (
	// ErrTeamNotFound indicates the team doesn't exist.
	ErrTeamNotFound = fmt.Errorf("team %w", apperr.ErrNotFound)
	// ErrUserNotFound indicates the invited or managed user doesn't exist.
	ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)
	// ErrNotAdmin indicates the caller lacks the admin role.
	ErrNotAdmin = fmt.Errorf("%w: team admin role required", apperr.ErrForbidden)
	// ErrInvalidAction indicates a request action other than approve or deny.
	ErrInvalidAction = fmt.Errorf("%w: invalid action", apperr.ErrInvalid)
	// ErrInvalidInput indicates invalid team input.
	ErrInvalidInput = fmt.Errorf("%w: invalid team input", apperr.ErrInvalid)
)
