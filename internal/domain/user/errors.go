package user

import (
	"fmt"

	"github.com/ganot/taskboard/internal/apperr"
)

var (
	// ErrUserNotFound indicates the user doesn't exist.
	ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)
	// ErrEmailTaken indicates another user already registered the email.
	ErrEmailTaken = fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	// ErrInvalidInput indicates invalid user input.
	ErrInvalidInput = fmt.Errorf("%w: invalid user input", apperr.ErrInvalid)
)
