package board

// Column is one stage of a project's board. TaskIDs is the only record of
// task position; tasks do not know which column holds them.
type Column struct {
	ID        string   `json:"id"`
	ProjectID string   `json:"project"`
	Title     string   `json:"title"`
	TaskIDs   TaskList `json:"taskIds"`
	Order     int      `json:"-"`
	Version   int64    `json:"-"`
}

// Board is a project's columns keyed by id plus their display order.
type Board struct {
	ProjectID   string            `json:"projectId"`
	Columns     map[string]Column `json:"columns"`
	ColumnOrder []string          `json:"columnOrder"`
}

// TaskRef identifies a task and the project that owns it.
type TaskRef struct {
	ID        string
	ProjectID string
	Title     string
}

// MoveRequest relocates a task. A nil, negative, or out-of-range Position
// appends to the end of the destination.
type MoveRequest struct {
	TaskID     string
	ToColumnID string
	Position   *int
	ActorID    string
}
