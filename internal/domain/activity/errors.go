package activity

import (
	"fmt"

	"github.com/ganot/taskboard/internal/apperr"
)

// ErrInvalidInput indicates an empty or malformed activity entry.
var ErrInvalidInput = fmt.Errorf("%w: invalid activity input", apperr.ErrInvalid)
