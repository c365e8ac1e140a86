package notification

import (
	"fmt"

	"github.com/ganot/taskboard/internal/apperr"
)

var (
	// ErrNotificationNotFound indicates the notification doesn't exist for the user.
	ErrNotificationNotFound = fmt.Errorf("notification %w", apperr.ErrNotFound)
)
