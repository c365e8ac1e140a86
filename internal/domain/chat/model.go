package chat

import "time"

// Message is a post in a project's chat.
type Message struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// DirectMessage is a private message between two users.
type DirectMessage struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types published for chat traffic.
const (
	EventChatMessage   = "chat_message"
	EventDirectMessage = "direct_message"
)

// UserRoom names the realtime room that receives a user's direct messages.
func UserRoom(userID string) string {
	return "user:" + userID
}
