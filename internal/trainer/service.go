package trainer

import (
	"context"
	"errors"

	"github.com/Wezylnia/GymSystem-sub001/internal/apperr"
	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/Wezylnia/GymSystem-sub001/internal/store"
)

var (
	ErrTrainerNotFound      = apperr.NotFound(apperr.CodeTrainerNotFound, "trainer not found")
	ErrAvailabilityNotFound = apperr.NotFound(apperr.CodeAvailabilityNotFound, "availability window not found")
)

// Manager maintains the weekly availability windows of trainers.
type Manager interface {
	ListAvailability(ctx context.Context, trainerID int) ([]Availability, error)
	AddAvailability(ctx context.Context, trainerID int, req AddAvailabilityRequest) (*Availability, error)
	RemoveAvailability(ctx context.Context, trainerID, availabilityID int) error
}

type manager struct {
	trainers     store.Repository[Trainer]
	availability store.Repository[Availability]
	clock        clock.Clock
}

func NewManager(trainers store.Repository[Trainer], availability store.Repository[Availability], clk clock.Clock) Manager {
	return &manager{
		trainers:     trainers,
		availability: availability,
		clock:        clk,
	}
}

func (m *manager) ListAvailability(ctx context.Context, trainerID int) ([]Availability, error) {
	if err := m.requireTrainer(ctx, trainerID); err != nil {
		return nil, err
	}

	windows, err := m.availability.ListWhere(ctx,
		store.Where(store.Eq("trainer_id", trainerID)).OrderBy("day_of_week", "start_time"))
	if err != nil {
		return nil, apperr.Unexpected("trainer.ListAvailability", err)
	}
	return windows, nil
}

func (m *manager) AddAvailability(ctx context.Context, trainerID int, req AddAvailabilityRequest) (*Availability, error) {
	if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		return nil, apperr.Invalid("day_of_week must be between 0 and 6")
	}
	start, err := clock.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, apperr.Invalid("start_time must be HH:MM")
	}
	end, err := clock.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, apperr.Invalid("end_time must be HH:MM")
	}
	if start >= end {
		return nil, apperr.Invalid("start_time must be before end_time")
	}

	if err := m.requireTrainer(ctx, trainerID); err != nil {
		return nil, err
	}

	now := m.clock.Now()
	window := &Availability{
		TrainerID: trainerID,
		DayOfWeek: *req.DayOfWeek,
		StartTime: start,
		EndTime:   end,
		CreatedAt: now,
		UpdatedAt: now,
		IsActive:  true,
	}
	if err := m.availability.Add(ctx, window); err != nil {
		return nil, apperr.Unexpected("trainer.AddAvailability", err)
	}
	return window, nil
}

func (m *manager) RemoveAvailability(ctx context.Context, trainerID, availabilityID int) error {
	window, err := m.availability.GetByID(ctx, availabilityID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAvailabilityNotFound
	}
	if err != nil {
		return apperr.Unexpected("trainer.RemoveAvailability", err)
	}
	if window.TrainerID != trainerID {
		return ErrAvailabilityNotFound
	}

	err = m.availability.Delete(ctx, availabilityID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrAvailabilityNotFound
	}
	if err != nil {
		return apperr.Unexpected("trainer.RemoveAvailability", err)
	}
	return nil
}

func (m *manager) requireTrainer(ctx context.Context, id int) error {
	_, err := m.trainers.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrTrainerNotFound
	}
	if err != nil {
		return apperr.Unexpected("trainer.requireTrainer", err)
	}
	return nil
}
