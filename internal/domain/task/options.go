package task

import "time"

// CreateRequest describes a new task. The board coordinator owns creation
// because it must place the task into a column in the same transaction.
type CreateRequest struct {
	ProjectID   string
	ColumnID    string
	Title       string
	Description string
	DueDate     *time.Time
	Priority    Priority
	Tags        []string
	Weight      *int
	Completed   bool
	AssigneeIDs []string
}

// UpdateRequest is a partial update; nil fields are left unchanged.
type UpdateRequest struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	ClearDue    bool
	Priority    *Priority
	Tags        []string
	Weight      *int
	Completed   *bool
	AssigneeIDs []string
}

// SearchOptions bounds a search.
type SearchOptions struct {
	Limit  int
	Offset int
}
