package booking

import (
	"context"
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/apperr"
	"github.com/Wezylnia/GymSystem-sub001/internal/appointment"
	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/Wezylnia/GymSystem-sub001/internal/trainer"
)

// Verdict is the outcome of an availability check. A rejection is an
// ordinary result, not an error.
type Verdict struct {
	Available bool   `json:"available"`
	Code      string `json:"code,omitempty"`
	Message   string `json:"message,omitempty"`
	// ConflictID is the appointment that caused a busy verdict.
	ConflictID int `json:"conflict_id,omitempty"`
}

func available() Verdict {
	return Verdict{Available: true}
}

func rejected(code, message string) Verdict {
	return Verdict{Code: code, Message: message}
}

// Err converts a rejection into the matching conflict error.
func (v Verdict) Err() error {
	if v.Available {
		return nil
	}
	return apperr.Conflict(v.Code, v.Message)
}

// Evaluator answers whether a trainer or a member is free for a slot. All
// checks are read-only.
type Evaluator struct {
	appointments store.Repository[appointment.Appointment]
	windows      store.Repository[trainer.Availability]
}

func NewEvaluator(appointments store.Repository[appointment.Appointment], windows store.Repository[trainer.Availability]) *Evaluator {
	return &Evaluator{appointments: appointments, windows: windows}
}

// CheckTrainerAvailability rejects with TRAINER_BUSY when the slot overlaps
// an open appointment of the trainer and with TRAINER_UNAVAILABLE when no
// single weekly window of the trainer contains it.
func (e *Evaluator) CheckTrainerAvailability(ctx context.Context, trainerID int, start time.Time, durationMinutes int) (Verdict, error) {
	if err := validateSlot(start, durationMinutes); err != nil {
		return Verdict{}, err
	}
	d := minutes(durationMinutes)

	conflict, err := e.firstConflict(ctx, store.Eq("trainer_id", trainerID), start, d)
	if err != nil {
		return Verdict{}, apperr.Unexpected("booking.CheckTrainerAvailability", err)
	}
	if conflict != nil {
		v := rejected(apperr.CodeTrainerBusy, "trainer already has an appointment at this time")
		v.ConflictID = conflict.ID
		return v, nil
	}

	from, to, sameDay := clock.Span(start, d)
	if !sameDay {
		return rejected(apperr.CodeTrainerUnavailable, "trainer is not available at this time"), nil
	}

	windows, err := e.windows.ListWhere(ctx, store.Where(
		store.Eq("trainer_id", trainerID),
		store.Eq("day_of_week", int(start.Weekday())),
	))
	if err != nil {
		return Verdict{}, apperr.Unexpected("booking.CheckTrainerAvailability", err)
	}

	for _, w := range windows {
		if w.Contains(from, to) {
			return available(), nil
		}
	}
	return rejected(apperr.CodeTrainerUnavailable, "trainer is not available at this time"), nil
}

// CheckMemberAvailability rejects with MEMBER_BUSY when the slot overlaps an
// open appointment of the member. Opening hours play no part here.
func (e *Evaluator) CheckMemberAvailability(ctx context.Context, memberID int, start time.Time, durationMinutes int) (Verdict, error) {
	if err := validateSlot(start, durationMinutes); err != nil {
		return Verdict{}, err
	}

	conflict, err := e.firstConflict(ctx, store.Eq("member_id", memberID), start, minutes(durationMinutes))
	if err != nil {
		return Verdict{}, apperr.Unexpected("booking.CheckMemberAvailability", err)
	}
	if conflict != nil {
		v := rejected(apperr.CodeMemberBusy, "member already has an appointment at this time")
		v.ConflictID = conflict.ID
		return v, nil
	}
	return available(), nil
}

// firstConflict returns an open appointment matching owner that overlaps
// the slot, or nil. The query only narrows the candidates; Overlaps decides.
func (e *Evaluator) firstConflict(ctx context.Context, owner store.Cond, start time.Time, d time.Duration) (*appointment.Appointment, error) {
	open, err := e.appointments.ListWhere(ctx, store.Where(
		owner,
		store.NotEq("status", appointment.StatusCancelled),
		store.Lt("appointment_date", start.Add(d)),
		store.Gt("ends_at", start),
	))
	if err != nil {
		return nil, err
	}

	for i := range open {
		if Overlaps(start, d, open[i].AppointmentDate, open[i].Duration()) {
			return &open[i], nil
		}
	}
	return nil, nil
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}

func validateSlot(start time.Time, durationMinutes int) error {
	if durationMinutes <= 0 {
		return apperr.InvalidWithCode(apperr.CodeInvalidInterval, "duration_minutes must be positive")
	}
	if start.IsZero() {
		return apperr.InvalidWithCode(apperr.CodeInvalidInterval, "start is required")
	}
	return nil
}
