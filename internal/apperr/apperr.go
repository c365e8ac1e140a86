// Package apperr defines the error kinds shared by every domain package.
//
// Domain packages declare sentinel errors that wrap exactly one kind, for
// example:
//
//	var ErrTaskNotFound = fmt.Errorf("task %w", apperr.ErrNotFound)
//
// Callers classify with errors.Is against the kind.
package apperr

import "errors"

var (
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalid indicates a validation failure: missing fields, cross-project
	// references, or a forbidden structural change.
	ErrInvalid = errors.New("validation error")
	// ErrForbidden indicates the caller lacks the required role.
	ErrForbidden = errors.New("permission denied")
	// ErrConflict indicates a concurrent writer won a compare-and-swap.
	ErrConflict = errors.New("conflict")
)

// Kind returns the kind err wraps, or nil for unexpected faults.
func Kind(err error) error {
	for _, kind := range []error{ErrNotFound, ErrInvalid, ErrForbidden, ErrConflict} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
