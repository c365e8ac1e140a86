package chat

import (
	"fmt"

	"github.com/ganot/taskboard/internal/apperr"
)

var (
	// ErrProjectNotFound indicates the chat's project doesn't exist.
	ErrProjectNotFound = fmt.Errorf("project %w", apperr.ErrNotFound)
	// ErrUserNotFound indicates the author or receiver doesn't exist.
	ErrUserNotFound = fmt.Errorf("user %w", apperr.ErrNotFound)
	// ErrEmptyContent indicates a message without content.
	ErrEmptyContent = fmt.Errorf("%w: message content required", apperr.ErrInvalid)
)
