// Package events carries appointment lifecycle notifications to other
// processes.
package events

import (
	"context"
	"errors"
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/logger"
	"github.com/google/uuid"
)

type Type string

const (
	AppointmentBooked    Type = "appointment.booked"
	AppointmentConfirmed Type = "appointment.confirmed"
	AppointmentCancelled Type = "appointment.cancelled"
)

// Event describes one appointment transition. Times are facility-local.
type Event struct {
	ID              string    `json:"id"`
	Type            Type      `json:"type"`
	AppointmentID   int       `json:"appointment_id"`
	MemberID        int       `json:"member_id"`
	TrainerID       int       `json:"trainer_id"`
	ServiceID       int       `json:"service_id"`
	AppointmentDate time.Time `json:"appointment_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Reason          string    `json:"reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// New returns an event of type t with a fresh id.
func New(t Type, occurredAt time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: occurredAt,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Multi delivers every event to all publishers, even when some fail.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops everything. Used when no broker is configured.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }

// Emit publishes e and logs a failure instead of returning it. The state
// change the event reports has already been committed.
func Emit(ctx context.Context, p Publisher, e Event) {
	if err := p.Publish(ctx, e); err != nil {
		logger.Warn("failed to publish event",
			"type", e.Type,
			"event_id", e.ID,
			"appointment_id", e.AppointmentID,
			"error", err,
		)
	}
}
