package booking

import (
	"context"
	"errors"
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/apperr"
	"github.com/Wezylnia/GymSystem-sub001/internal/appointment"
	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/Wezylnia/GymSystem-sub001/internal/db"
	"github.com/Wezylnia/GymSystem-sub001/internal/events"
	"github.com/Wezylnia/GymSystem-sub001/internal/gym"
	"github.com/Wezylnia/GymSystem-sub001/internal/metrics"
	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var (
	ErrServiceNotFound   = apperr.NotFound(apperr.CodeServiceNotFound, "service not found")
	ErrLocationClosed    = apperr.Conflict(apperr.CodeLocationClosed, "location is closed at this time")
	ErrReferenceNotFound = apperr.NotFound(apperr.CodeReferenceNotFound, "member, trainer or service not found")
)

// Advisory lock namespaces, kept in the high 32 bits of the key.
const (
	trainerLockSpace int64 = 1 << 32
	memberLockSpace  int64 = 2 << 32
)

// Constraint names from the overlap guard migration.
const (
	trainerOverlapConstraint = "appointments_trainer_no_overlap"
	memberOverlapConstraint  = "appointments_member_no_overlap"
)

// Locker serializes bookings that touch the same trainer or member.
type Locker interface {
	Lock(ctx context.Context, key int64) error
}

// Request is a booking attempt. A nil Price takes the service's price.
type Request struct {
	MemberID        int
	TrainerID       int
	ServiceID       int
	Start           time.Time
	DurationMinutes int
	Price           *decimal.Decimal
	Notes           string
}

// Booker turns a booking request into a pending appointment.
type Booker interface {
	BookAppointment(ctx context.Context, req Request) (*appointment.Appointment, error)
}

type booker struct {
	evaluator    *Evaluator
	services     store.Repository[gym.Service]
	hours        store.Repository[gym.WorkingHours]
	appointments store.Repository[appointment.Appointment]
	tx           db.TxRunner
	locker       Locker
	publisher    events.Publisher
	clock        clock.Clock
	timeout      time.Duration
}

type Deps struct {
	Evaluator    *Evaluator
	Services     store.Repository[gym.Service]
	Hours        store.Repository[gym.WorkingHours]
	Appointments store.Repository[appointment.Appointment]
	Tx           db.TxRunner
	Locker       Locker
	Publisher    events.Publisher
	Clock        clock.Clock
	// Timeout bounds a whole booking attempt. Zero means no bound.
	Timeout time.Duration
}

func NewBooker(d Deps) Booker {
	return &booker{
		evaluator:    d.Evaluator,
		services:     d.Services,
		hours:        d.Hours,
		appointments: d.Appointments,
		tx:           d.Tx,
		locker:       d.Locker,
		publisher:    d.Publisher,
		clock:        d.Clock,
		timeout:      d.Timeout,
	}
}

// BookAppointment checks the trainer, then the member, then the opening
// hours of the service's location, and stores a pending appointment only
// when all of them pass. The first failing check is reported.
func (b *booker) BookAppointment(ctx context.Context, req Request) (*appointment.Appointment, error) {
	a, err := b.book(ctx, req)
	if err != nil {
		appErr := apperr.From("booking.BookAppointment", err)
		metrics.RecordBooking(appErr.Code)
		return nil, appErr
	}

	metrics.RecordBooking("booked")
	events.Emit(ctx, b.publisher, a.Event(events.AppointmentBooked, a.CreatedAt))
	return a, nil
}

func (b *booker) book(ctx context.Context, req Request) (*appointment.Appointment, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	var created *appointment.Appointment
	err := b.tx.InTx(ctx, func(ctx context.Context) error {
		if err := b.locker.Lock(ctx, trainerLockSpace|int64(req.TrainerID)); err != nil {
			return err
		}
		if err := b.locker.Lock(ctx, memberLockSpace|int64(req.MemberID)); err != nil {
			return err
		}

		verdict, err := b.evaluator.CheckTrainerAvailability(ctx, req.TrainerID, req.Start, req.DurationMinutes)
		if err != nil {
			return err
		}
		if !verdict.Available {
			return verdict.Err()
		}

		verdict, err = b.evaluator.CheckMemberAvailability(ctx, req.MemberID, req.Start, req.DurationMinutes)
		if err != nil {
			return err
		}
		if !verdict.Available {
			return verdict.Err()
		}

		service, err := b.services.GetByID(ctx, req.ServiceID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrServiceNotFound
		}
		if err != nil {
			return err
		}

		open, err := b.locationOpen(ctx, service.GymLocationID, req.Start, minutes(req.DurationMinutes))
		if err != nil {
			return err
		}
		if !open {
			return ErrLocationClosed
		}

		price := service.Price
		if req.Price != nil {
			price = *req.Price
		}

		now := b.clock.Now()
		a := &appointment.Appointment{
			MemberID:        req.MemberID,
			TrainerID:       req.TrainerID,
			ServiceID:       req.ServiceID,
			AppointmentDate: req.Start,
			DurationMinutes: req.DurationMinutes,
			Price:           price,
			Status:          appointment.StatusPending,
			Notes:           req.Notes,
			CreatedAt:       now,
			UpdatedAt:       now,
			IsActive:        true,
		}
		if err := b.appointments.Add(ctx, a); err != nil {
			return translateInsertError(err)
		}

		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// locationOpen reports whether the location's hours for the slot's weekday
// contain the whole slot.
func (b *booker) locationOpen(ctx context.Context, locationID int, start time.Time, d time.Duration) (bool, error) {
	from, to, sameDay := clock.Span(start, d)
	if !sameDay {
		return false, nil
	}

	hours, err := b.hours.ListWhere(ctx, store.Where(
		store.Eq("gym_location_id", locationID),
		store.Eq("day_of_week", int(start.Weekday())),
	))
	if err != nil {
		return false, err
	}

	for _, h := range hours {
		if h.Covers(from, to) {
			return true, nil
		}
	}
	return false, nil
}

func validateRequest(req Request) error {
	if req.MemberID <= 0 || req.TrainerID <= 0 || req.ServiceID <= 0 {
		return apperr.Invalid("member_id, trainer_id and service_id must be positive")
	}
	if req.Price != nil && req.Price.IsNegative() {
		return apperr.Invalid("price must not be negative")
	}
	return validateSlot(req.Start, req.DurationMinutes)
}

// translateInsertError maps constraint violations raised by the insert to
// the errors the checks would have produced.
func translateInsertError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case "23P01":
		switch pqErr.Constraint {
		case trainerOverlapConstraint:
			return apperr.Conflict(apperr.CodeTrainerBusy, "trainer already has an appointment at this time")
		case memberOverlapConstraint:
			return apperr.Conflict(apperr.CodeMemberBusy, "member already has an appointment at this time")
		}
	case "23503":
		return ErrReferenceNotFound
	}
	return err
}
