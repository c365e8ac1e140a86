package project

import "time"

// DefaultColumns are seeded into every new project, in order.
var DefaultColumns = []string{"To Do", "In Progress", "Done"}

// Project is a team's board. ColumnOrder caches the column ids by order.
type Project struct {
	ID          string    `json:"id"`
	TeamID      string    `json:"team"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ColumnOrder []string  `json:"columnOrder"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	TeamID      string
	Name        string
	Description string
}
