package appointment

import (
	"fmt"
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/events"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return st, true
	}
	return "", false
}

// Appointment is a booked session of one member with one trainer.
// AppointmentDate is facility-local wall-clock time.
type Appointment struct {
	ID              int             `db:"id" json:"id"`
	MemberID        int             `db:"member_id" json:"member_id"`
	TrainerID       int             `db:"trainer_id" json:"trainer_id"`
	ServiceID       int             `db:"service_id" json:"service_id"`
	AppointmentDate time.Time       `db:"appointment_date" json:"appointment_date"`
	DurationMinutes int             `db:"duration_minutes" json:"duration_minutes"`
	EndsAt          time.Time       `db:"ends_at" json:"ends_at"`
	Price           decimal.Decimal `db:"price" json:"price"`
	Status          Status          `db:"status" json:"status"`
	Notes           string          `db:"notes" json:"notes"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
	IsActive        bool            `db:"is_active" json:"is_active"`
}

func (a *Appointment) Duration() time.Duration {
	return time.Duration(a.DurationMinutes) * time.Minute
}

// End is the exclusive end of the appointment interval.
func (a *Appointment) End() time.Time {
	return a.AppointmentDate.Add(a.Duration())
}

// Event builds the lifecycle event of type t for a.
func (a *Appointment) Event(t events.Type, at time.Time) events.Event {
	e := events.New(t, at)
	e.AppointmentID = a.ID
	e.MemberID = a.MemberID
	e.TrainerID = a.TrainerID
	e.ServiceID = a.ServiceID
	e.AppointmentDate = a.AppointmentDate
	e.DurationMinutes = a.DurationMinutes
	return e
}

func appendCancellationNote(notes, reason string) string {
	line := fmt.Sprintf("Cancellation reason: %s", reason)
	if notes == "" {
		return line
	}
	return notes + "\n" + line
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}
