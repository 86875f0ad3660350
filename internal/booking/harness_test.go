package booking

import (
	"context"
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/appointment"
	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/Wezylnia/GymSystem-sub001/internal/events"
	"github.com/Wezylnia/GymSystem-sub001/internal/gym"
	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/Wezylnia/GymSystem-sub001/internal/store/storetest"
	"github.com/Wezylnia/GymSystem-sub001/internal/trainer"
	"github.com/stretchr/testify/mock"
)

var (
	now = time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	// 2025-03-03 is a Monday, 2025-03-09 a Sunday.
	mondayAt = func(h, m int) time.Time { return time.Date(2025, time.March, 3, h, m, 0, 0, time.UTC) }
	sundayAt = func(h, m int) time.Time { return time.Date(2025, time.March, 9, h, m, 0, 0, time.UTC) }
)

type recorder struct {
	got []events.Event
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.got = append(r.got, e)
	return nil
}

type fakeLocker struct {
	keys []int64
	err  error
}

func (l *fakeLocker) Lock(_ context.Context, key int64) error {
	l.keys = append(l.keys, key)
	return l.err
}

type harness struct {
	appointments *storetest.MockRepository[appointment.Appointment]
	windows      *storetest.MockRepository[trainer.Availability]
	services     *storetest.MockRepository[gym.Service]
	hours        *storetest.MockRepository[gym.WorkingHours]
	specialties  *storetest.MockRepository[trainer.Specialty]
	trainers     *storetest.MockRepository[trainer.Trainer]
	tx           *storetest.PassthroughTx
	locker       *fakeLocker
	events       *recorder

	evaluator *Evaluator
	booker    Booker
	finder    *Finder
}

func newHarness() *harness {
	h := &harness{
		appointments: new(storetest.MockRepository[appointment.Appointment]),
		windows:      new(storetest.MockRepository[trainer.Availability]),
		services:     new(storetest.MockRepository[gym.Service]),
		hours:        new(storetest.MockRepository[gym.WorkingHours]),
		specialties:  new(storetest.MockRepository[trainer.Specialty]),
		trainers:     new(storetest.MockRepository[trainer.Trainer]),
		tx:           &storetest.PassthroughTx{},
		locker:       &fakeLocker{},
		events:       &recorder{},
	}
	h.evaluator = NewEvaluator(h.appointments, h.windows)
	h.booker = NewBooker(Deps{
		Evaluator:    h.evaluator,
		Services:     h.services,
		Hours:        h.hours,
		Appointments: h.appointments,
		Tx:           h.tx,
		Locker:       h.locker,
		Publisher:    h.events,
		Clock:        clock.Fixed(now),
		Timeout:      time.Second,
	})
	h.finder = NewFinder(h.evaluator, h.services, h.specialties, h.trainers, 2)
	return h
}

// ownedBy matches the open-appointment query of one trainer or member.
func ownedBy(column string, id int) interface{} {
	return mock.MatchedBy(func(f store.Filter) bool {
		return len(f.Conds) > 0 && f.Conds[0] == store.Eq(column, id)
	})
}

func (h *harness) trainerAppointments(trainerID int, existing ...appointment.Appointment) {
	h.appointments.On("ListWhere", mock.Anything, ownedBy("trainer_id", trainerID)).Return(existing, nil)
}

func (h *harness) memberAppointments(memberID int, existing ...appointment.Appointment) {
	h.appointments.On("ListWhere", mock.Anything, ownedBy("member_id", memberID)).Return(existing, nil)
}

func (h *harness) trainerWindows(trainerID int, day time.Weekday, windows ...trainer.Availability) {
	h.windows.On("ListWhere", mock.Anything, store.Where(
		store.Eq("trainer_id", trainerID),
		store.Eq("day_of_week", int(day)),
	)).Return(windows, nil)
}

func (h *harness) locationHours(locationID int, day time.Weekday, hours ...gym.WorkingHours) {
	h.hours.On("ListWhere", mock.Anything, store.Where(
		store.Eq("gym_location_id", locationID),
		store.Eq("day_of_week", int(day)),
	)).Return(hours, nil)
}

func window(trainerID, fromH, toH int) trainer.Availability {
	return trainer.Availability{
		TrainerID: trainerID,
		DayOfWeek: int(time.Monday),
		StartTime: clock.NewTimeOfDay(fromH, 0),
		EndTime:   clock.NewTimeOfDay(toH, 0),
		IsActive:  true,
	}
}

func booked(id, memberID, trainerID int, start time.Time, minutes int) appointment.Appointment {
	return appointment.Appointment{
		ID:              id,
		MemberID:        memberID,
		TrainerID:       trainerID,
		ServiceID:       1,
		AppointmentDate: start,
		DurationMinutes: minutes,
		Status:          appointment.StatusConfirmed,
		IsActive:        true,
	}
}
