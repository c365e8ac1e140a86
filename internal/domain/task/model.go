package task

import "time"

// Priority ranks a task on the board.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task is a unit of work inside a project. Its column membership is not
// stored here; the board's column lists are the source of position.
type Task struct {
	ID          string       `json:"id"`
	ProjectID   string       `json:"projectId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     *time.Time   `json:"dueDate"`
	Priority    Priority     `json:"priority"`
	Tags        []string     `json:"tags"`
	Weight      int          `json:"weight"`
	Completed   bool         `json:"completed"`
	AssigneeIDs []string     `json:"assigneeIds"`
	Attachments []Attachment `json:"attachments"`
	Comments    []Comment    `json:"comments"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Comment is a note left on a task.
type Comment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Attachment references a stored file.
type Attachment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"taskId"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// SearchResult is a full-text hit within a project.
type SearchResult struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Priority  Priority `json:"priority"`
	Completed bool     `json:"completed"`
	Snippet   string   `json:"snippet,omitempty"`
}
