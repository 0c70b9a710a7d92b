package tasks

import (
	"TeamChat/interfaces"
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

// AsynqQueue hands notifications to Redis-backed asynq workers.
type AsynqQueue struct {
	client enqueuer
}

var _ interfaces.NotificationQueue = (*AsynqQueue)(nil)

func NewAsynqQueue(redisURL string) (*AsynqQueue, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("asynq: parse REDIS_URL: %w", err)
	}
	return &AsynqQueue{client: asynq.NewClient(opt)}, nil
}

func (q *AsynqQueue) EnqueueNewMessage(ctx context.Context, n interfaces.NewMessageNotification) error {
	task, err := NewNotifyNewMessageTask(n)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}
	return nil
}

func (q *AsynqQueue) Close() error {
	return q.client.Close()
}
