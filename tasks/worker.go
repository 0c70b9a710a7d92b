package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hibiken/asynq"
)

// Worker consumes notification tasks.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

func NewWorker(redisURL string, concurrency int, notifier Notifier) (*Worker, error) {
	opt, err := asynq.ParseRedisURI(redisURL)
	if err != nil {
		return nil, fmt.Errorf("asynq: parse REDIS_URL: %w", err)
	}
	if concurrency <= 0 {
		concurrency = 10
	}

	srv := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{QueueNotifications: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			log.Error("[Worker] task failed", "type", task.Type(), "retry", retried, "max_retry", maxRetry, "err", err)
		}),
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeNotifyNewMessage, HandleNotifyNewMessage(notifier))
	return &Worker{server: srv, mux: mux}, nil
}

// Run processes tasks until ctx is canceled, then shuts down gracefully.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	log.Info("[Worker] started", "queue", QueueNotifications)
	<-ctx.Done()
	w.server.Shutdown()
	log.Info("[Worker] stopped")
	return nil
}
