package appointment

import (
	"context"
	"errors"

	"github.com/Wezylnia/GymSystem-sub001/internal/apperr"
	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/Wezylnia/GymSystem-sub001/internal/db"
	"github.com/Wezylnia/GymSystem-sub001/internal/events"
	"github.com/Wezylnia/GymSystem-sub001/internal/metrics"
	"github.com/Wezylnia/GymSystem-sub001/internal/store"
)

var (
	ErrNotFound              = apperr.NotFound(apperr.CodeAppointmentNotFound, "appointment not found")
	ErrNotPending            = apperr.Conflict(apperr.CodeNotPending, "appointment is not pending")
	ErrAlreadyCancelled      = apperr.Conflict(apperr.CodeAlreadyCancelled, "appointment is already cancelled")
	ErrCannotCancelCompleted = apperr.Conflict(apperr.CodeCannotCancelCompleted, "completed appointment cannot be cancelled")
)

// Manager drives the appointment state machine and answers queries about
// existing appointments.
type Manager interface {
	Get(ctx context.Context, id int) (*Appointment, error)
	ListByMember(ctx context.Context, memberID int, status Status) ([]Appointment, error)
	ListByTrainer(ctx context.Context, trainerID int, status Status) ([]Appointment, error)
	Confirm(ctx context.Context, id int) (*Appointment, error)
	Cancel(ctx context.Context, id int, reason string) (*Appointment, error)
}

type manager struct {
	repo      store.Repository[Appointment]
	tx        db.TxRunner
	publisher events.Publisher
	clock     clock.Clock
}

func NewManager(repo store.Repository[Appointment], tx db.TxRunner, publisher events.Publisher, clk clock.Clock) Manager {
	return &manager{
		repo:      repo,
		tx:        tx,
		publisher: publisher,
		clock:     clk,
	}
}

func (m *manager) Get(ctx context.Context, id int) (*Appointment, error) {
	a, err := m.repo.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apperr.Unexpected("appointment.Get", err)
	}
	return a, nil
}

// ListByMember returns the member's appointments by start time. An empty
// status means any status.
func (m *manager) ListByMember(ctx context.Context, memberID int, status Status) ([]Appointment, error) {
	return m.list(ctx, "appointment.ListByMember", store.Eq("member_id", memberID), status)
}

func (m *manager) ListByTrainer(ctx context.Context, trainerID int, status Status) ([]Appointment, error) {
	return m.list(ctx, "appointment.ListByTrainer", store.Eq("trainer_id", trainerID), status)
}

func (m *manager) list(ctx context.Context, op string, owner store.Cond, status Status) ([]Appointment, error) {
	f := store.Where(owner)
	if status != "" {
		f = f.And(store.Eq("status", status))
	}

	items, err := m.repo.ListWhere(ctx, f.OrderBy("appointment_date"))
	if err != nil {
		return nil, apperr.Unexpected(op, err)
	}
	return items, nil
}

func (m *manager) Confirm(ctx context.Context, id int) (*Appointment, error) {
	a, err := m.transition(ctx, "appointment.Confirm", id, func(a *Appointment) error {
		if a.Status != StatusPending {
			return ErrNotPending
		}
		a.Status = StatusConfirmed
		return nil
	})
	if err != nil {
		return nil, err
	}

	events.Emit(ctx, m.publisher, a.Event(events.AppointmentConfirmed, a.UpdatedAt))
	return a, nil
}

// Cancel appends a non-empty reason to the notes, keeping what was there.
func (m *manager) Cancel(ctx context.Context, id int, reason string) (*Appointment, error) {
	a, err := m.transition(ctx, "appointment.Cancel", id, func(a *Appointment) error {
		switch a.Status {
		case StatusCancelled:
			return ErrAlreadyCancelled
		case StatusCompleted:
			return ErrCannotCancelCompleted
		}
		a.Status = StatusCancelled
		if reason != "" {
			a.Notes = appendCancellationNote(a.Notes, reason)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e := a.Event(events.AppointmentCancelled, a.UpdatedAt)
	e.Reason = reason
	events.Emit(ctx, m.publisher, e)
	return a, nil
}

// transition locks the appointment row, applies change and stores the result
// in one transaction.
func (m *manager) transition(ctx context.Context, op string, id int, change func(*Appointment) error) (*Appointment, error) {
	var updated *Appointment

	err := m.tx.InTx(ctx, func(ctx context.Context) error {
		a, err := m.repo.GetFirstWhere(ctx, store.Where(store.Eq("id", id)).ForUpdate())
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := change(a); err != nil {
			return err
		}
		a.UpdatedAt = m.clock.Now()

		err = m.repo.Update(ctx, a)
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		updated = a
		return nil
	})
	if err != nil {
		return nil, apperr.From(op, err)
	}

	metrics.RecordTransition(string(updated.Status))
	return updated, nil
}
