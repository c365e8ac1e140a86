package notification

import "time"

// Channels a notification can be delivered on.
const (
	ChannelPush  = "push"
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// VerbTaskAssigned is sent to users newly assigned to a task.
const VerbTaskAssigned = "task_assigned"

// Notification is a persisted message for a user.
type Notification struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	ActorID   *string        `json:"actorId,omitempty"`
	Verb      string         `json:"verb"`
	Data      map[string]any `json:"data"`
	Channel   string         `json:"channel"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Request asks for a notification to be recorded and delivered.
type Request struct {
	UserID   string
	ActorID  string
	Verb     string
	Data     map[string]any
	Channels []string
}
