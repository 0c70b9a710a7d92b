package interfaces

// Change event types
const (
	EventChatCreated    = "chat_created"
	EventChatDeleted    = "chat_deleted"
	EventChatRead       = "chat_read"
	EventMessageSent    = "message_sent"
	EventMessageUpdated = "message_updated"
	EventMessageDeleted = "message_deleted"
)

// ChangeEvent tells connected clients that documents of a chat changed.
type ChangeEvent struct {
	Type      string      `json:"type"`
	ChatID    string      `json:"chat_id"`
	UserID    string      `json:"user_id,omitempty"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// EventPublisher fans change events out to subscribers.
type EventPublisher interface {
	Publish(event ChangeEvent)
}
