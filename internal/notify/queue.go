// Package notify turns appointment events into e-mails to members. The API
// process queues jobs in Redis; a separate worker delivers them over SMTP.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/Wezylnia/GymSystem-sub001/internal/events"
	"github.com/Wezylnia/GymSystem-sub001/internal/logger"
	"github.com/Wezylnia/GymSystem-sub001/internal/metrics"
	"github.com/redis/go-redis/v9"
)

const (
	QueueKey  = "notifications"
	FailedKey = "notifications:failed"

	maxTries = 3
)

type Job struct {
	Event   events.Event `json:"event"`
	Tries   int          `json:"tries"`
	Created time.Time    `json:"created"`
}

// Queue is the producer side. It satisfies events.Publisher.
type Queue struct {
	redis *redis.Client
	clock clock.Clock
}

func NewQueue(rdb *redis.Client, clk clock.Clock) *Queue {
	return &Queue{redis: rdb, clock: clk}
}

func (q *Queue) Publish(ctx context.Context, e events.Event) error {
	data, err := json.Marshal(Job{Event: e, Created: q.clock.Now()})
	if err != nil {
		return err
	}

	if err := q.redis.LPush(ctx, QueueKey, string(data)).Err(); err != nil {
		return err
	}

	metrics.RecordNotification(string(e.Type), "queued")
	logger.Debug("notification queued", "type", e.Type, "appointment_id", e.AppointmentID)
	return nil
}

// Length reports the number of pending jobs and updates the queue gauge.
func (q *Queue) Length(ctx context.Context) int64 {
	length, err := q.redis.LLen(ctx, QueueKey).Result()
	if err != nil {
		return 0
	}
	metrics.NotificationQueueLength.Set(float64(length))
	return length
}
