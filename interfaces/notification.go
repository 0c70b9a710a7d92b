package interfaces

import "context"

// PushSender delivers a single push notification to one device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// NewMessageNotification describes a freshly sent message that recipients
// should be notified about.
type NewMessageNotification struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
	SenderID  string `json:"sender_id"`
	Content   string `json:"content"`
}

// NotificationQueue hands notifications off to background delivery.
type NotificationQueue interface {
	EnqueueNewMessage(ctx context.Context, n NewMessageNotification) error
}
