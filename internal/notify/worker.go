package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Deliverer sends a stored notification on the given channels. An empty
// channel list means the notification's own channel.
type Deliverer interface {
	Deliver(ctx context.Context, id string, channels []string) error
}

// Worker drains the queue and hands each job to a Deliverer.
type Worker struct {
	queue     *RedisQueue
	deliverer Deliverer
	logger    *slog.Logger

	pollTimeout time.Duration
	backoff     time.Duration
}

// NewWorker creates a worker. logger may be nil.
func NewWorker(queue *RedisQueue, deliverer Deliverer, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Worker{
		queue:       queue,
		deliverer:   deliverer,
		logger:      logger,
		pollTimeout: 5 * time.Second,
		backoff:     time.Second,
	}
}

// Run processes notifications until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("notification worker started", "queue", w.queue.key)
	defer w.logger.Info("notification worker stopped")

	for ctx.Err() == nil {
		job, err := w.queue.Pop(ctx, w.pollTimeout)
		switch {
		case errors.Is(err, ErrEmpty):
			continue
		case err != nil:
			if ctx.Err() != nil {
				return
			}
			w.logger.Warn("notification queue read failed", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.backoff):
			}
			continue
		}

		if err := w.deliverer.Deliver(ctx, job.ID, job.Channels); err != nil {
			w.logger.Warn("notification not delivered", "notification_id", job.ID, "channels", job.Channels, "error", err)
		}
	}
}
