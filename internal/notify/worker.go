package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/logger"
	"github.com/Wezylnia/GymSystem-sub001/internal/metrics"
	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/redis/go-redis/v9"
)

// Worker drains the notification queue. Each job gets maxTries delivery
// attempts before it is parked on the failed list.
type Worker struct {
	redis       *redis.Client
	queue       *Queue
	members     store.Repository[Member]
	sender      Sender
	pollTimeout time.Duration
	retryDelay  time.Duration
}

func NewWorker(rdb *redis.Client, queue *Queue, members store.Repository[Member], sender Sender) *Worker {
	return &Worker{
		redis:       rdb,
		queue:       queue,
		members:     members,
		sender:      sender,
		pollTimeout: 2 * time.Second,
		retryDelay:  5 * time.Second,
	}
}

func (w *Worker) Run(ctx context.Context) {
	logger.Info("notification worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("notification worker stopped")
			return
		default:
			if err := w.ProcessNext(ctx); err != nil && ctx.Err() == nil {
				logger.Error("notification worker", "error", err)
				time.Sleep(time.Second)
			}
			w.queue.Length(ctx)
		}
	}
}

// ProcessNext handles at most one job. An empty queue is not an error.
func (w *Worker) ProcessNext(ctx context.Context) error {
	result, err := w.redis.BRPop(ctx, w.pollTimeout, QueueKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}

	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.Error("bad notification job", "error", err)
		metrics.RecordNotification("unknown", "dropped")
		return nil
	}

	job.Tries++
	eventType := string(job.Event.Type)
	log := logger.With("event_id", job.Event.ID, "type", eventType, "member_id", job.Event.MemberID)

	member, err := w.members.GetByID(ctx, job.Event.MemberID)
	if errors.Is(err, store.ErrNotFound) {
		log.Warn("notification for unknown member dropped")
		metrics.RecordNotification(eventType, "dropped")
		return nil
	}
	if err == nil {
		err = w.sender.Send(ctx, Render(job.Event, *member))
	}
	if err != nil {
		return w.retry(ctx, job, err)
	}

	metrics.RecordNotification(eventType, "sent")
	log.Infow("notification sent", "appointment_id", job.Event.AppointmentID, "attempt", job.Tries)
	return nil
}

func (w *Worker) retry(ctx context.Context, job Job, cause error) error {
	eventType := string(job.Event.Type)
	logger.Error("notification delivery failed",
		"type", eventType,
		"event_id", job.Event.ID,
		"attempt", job.Tries,
		"error", cause,
	)

	if job.Tries >= maxTries {
		metrics.RecordNotification(eventType, "failed")
		return w.saveFailed(job, cause)
	}

	select {
	case <-ctx.Done():
	case <-time.After(w.retryDelay):
	}

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	// The job must survive shutdown, so it is re-queued without the worker context.
	if err := w.redis.LPush(context.Background(), QueueKey, string(data)).Err(); err != nil {
		return err
	}
	metrics.RecordNotification(eventType, "retried")
	return nil
}

func (w *Worker) saveFailed(job Job, cause error) error {
	failed := map[string]interface{}{
		"job":   job,
		"error": cause.Error(),
		"time":  time.Now(),
	}
	data, err := json.Marshal(failed)
	if err != nil {
		return err
	}
	if err := w.redis.LPush(context.Background(), FailedKey, string(data)).Err(); err != nil {
		return err
	}
	logger.Error("notification moved to failed queue", "event_id", job.Event.ID, "member_id", job.Event.MemberID)
	return nil
}
