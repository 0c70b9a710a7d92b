package tasks

import (
	"TeamChat/interfaces"
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

const (
	TypeNotifyNewMessage = "chat:notify_new_message"

	QueueNotifications = "notifications"
	notifyMaxRetry     = 3
)

// Notifier delivers the push notifications for one new message.
type Notifier interface {
	NotifyNewMessage(ctx context.Context, n interfaces.NewMessageNotification) error
}

func NewNotifyNewMessageTask(n interfaces.NewMessageNotification) (*asynq.Task, error) {
	payload, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNotifyNewMessage, payload, asynq.MaxRetry(notifyMaxRetry), asynq.Queue(QueueNotifications)), nil
}

// HandleNotifyNewMessage returns an asynq handler. Undecodable payloads are
// not retried.
func HandleNotifyNewMessage(notifier Notifier) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var n interfaces.NewMessageNotification
		if err := json.Unmarshal(t.Payload(), &n); err != nil {
			return fmt.Errorf("decode %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
		}
		if n.ChatID == "" || n.MessageID == "" {
			return fmt.Errorf("incomplete %s payload: %w", t.Type(), asynq.SkipRetry)
		}

		log.Debug("[Worker] notifying", "chat_id", n.ChatID, "message_id", n.MessageID)
		return notifier.NotifyNewMessage(ctx, n)
	}
}
