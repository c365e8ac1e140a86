package activity

import "time"

// ActivityType represents the type of activity event
type ActivityType string

const (
	TypeTaskCreated      ActivityType = "task_created"
	TypeTaskUpdated      ActivityType = "task_updated"
	TypeTaskMoved        ActivityType = "task_moved"
	TypeTaskDeleted      ActivityType = "task_deleted"
	TypeColumnCreated    ActivityType = "column_created"
	TypeColumnRenamed    ActivityType = "column_renamed"
	TypeColumnDeleted    ActivityType = "column_deleted"
	TypeColumnsReordered ActivityType = "columns_reordered"
	TypeCommentAdded     ActivityType = "comment_added"
	TypeAttachmentAdded  ActivityType = "attachment_added"
)

// ActivityEntry represents an event in a project's activity feed
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ProjectID    string       `json:"projectId"`
	TaskID       *string      `json:"taskId,omitempty"`
	ActorID      *string      `json:"actorId,omitempty"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"` // JSON string
	CreatedAt    time.Time    `json:"createdAt"`
}
