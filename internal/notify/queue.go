package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultQueueKey is the Redis list holding pending notification jobs.
const DefaultQueueKey = "notifications:queue"

// ErrEmpty is returned by Pop when no job arrived before the timeout.
var ErrEmpty = errors.New("notification queue empty")

// Job is one queued delivery: the stored notification and the channels it
// goes out on.
type Job struct {
	ID       string   `json:"id"`
	Channels []string `json:"channels,omitempty"`
}

// RedisQueue is a FIFO of delivery jobs backed by a Redis list.
type RedisQueue struct {
	client *redis.Client
	key    string
}

// NewRedisQueue creates a queue on key, or DefaultQueueKey when key is empty.
func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = DefaultQueueKey
	}
	return &RedisQueue{client: client, key: key}
}

// Push appends a job for the notification and its channels.
func (q *RedisQueue) Push(ctx context.Context, notificationID string, channels []string) error {
	payload, err := json.Marshal(Job{ID: notificationID, Channels: channels})
	if err != nil {
		return fmt.Errorf("encoding notification %s: %w", notificationID, err)
	}
	if err := q.client.RPush(ctx, q.key, payload).Err(); err != nil {
		return fmt.Errorf("pushing notification %s: %w", notificationID, err)
	}
	return nil
}

// Pop blocks up to timeout for the oldest job. A bare id left by an older
// producer is returned as a job without channels.
func (q *RedisQueue) Pop(ctx context.Context, timeout time.Duration) (Job, error) {
	res, err := q.client.BLPop(ctx, timeout, q.key).Result()
	if errors.Is(err, redis.Nil) {
		return Job{}, ErrEmpty
	}
	if err != nil {
		return Job{}, fmt.Errorf("popping notification: %w", err)
	}
	// BLPOP replies with [key, value].
	if len(res) != 2 {
		return Job{}, fmt.Errorf("unexpected BLPOP reply: %v", res)
	}
	var job Job
	if err := json.Unmarshal([]byte(res[1]), &job); err != nil || job.ID == "" {
		return Job{ID: res[1]}, nil
	}
	return job, nil
}

// Len reports the number of pending jobs.
func (q *RedisQueue) Len(ctx context.Context) (int64, error) {
	return q.client.LLen(ctx, q.key).Result()
}
