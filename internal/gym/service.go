package gym

import (
	"context"
	"errors"

	"github.com/Wezylnia/GymSystem-sub001/internal/apperr"
	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/Wezylnia/GymSystem-sub001/internal/store"
)

var (
	ErrLocationNotFound = apperr.NotFound(apperr.CodeLocationNotFound, "gym location not found")
)

// Manager maintains the weekly opening hours of gym locations.
type Manager interface {
	ListWorkingHours(ctx context.Context, locationID int) ([]WorkingHours, error)
	SetWorkingHours(ctx context.Context, locationID int, req SetWorkingHoursRequest) (*WorkingHours, error)
}

type manager struct {
	locations store.Repository[Location]
	hours     store.Repository[WorkingHours]
	clock     clock.Clock
}

func NewManager(
	locations store.Repository[Location],
	hours store.Repository[WorkingHours],
	clk clock.Clock,
) Manager {
	return &manager{
		locations: locations,
		hours:     hours,
		clock:     clk,
	}
}

func (m *manager) ListWorkingHours(ctx context.Context, locationID int) ([]WorkingHours, error) {
	if err := m.requireLocation(ctx, locationID); err != nil {
		return nil, err
	}

	hours, err := m.hours.ListWhere(ctx, store.Where(store.Eq("gym_location_id", locationID)).OrderBy("day_of_week"))
	if err != nil {
		return nil, apperr.Unexpected("gym.ListWorkingHours", err)
	}
	return hours, nil
}

// SetWorkingHours replaces the opening window of one weekday.
func (m *manager) SetWorkingHours(ctx context.Context, locationID int, req SetWorkingHoursRequest) (*WorkingHours, error) {
	if req.DayOfWeek == nil || *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		return nil, apperr.Invalid("day_of_week must be between 0 and 6")
	}

	var open, closeAt clock.TimeOfDay
	if !req.IsClosed {
		var err error
		if open, err = clock.ParseTimeOfDay(req.OpenTime); err != nil {
			return nil, apperr.Invalid("open_time must be HH:MM")
		}
		if closeAt, err = clock.ParseTimeOfDay(req.CloseTime); err != nil {
			return nil, apperr.Invalid("close_time must be HH:MM")
		}
		if open >= closeAt {
			return nil, apperr.Invalid("open_time must be before close_time")
		}
	}

	if err := m.requireLocation(ctx, locationID); err != nil {
		return nil, err
	}

	now := m.clock.Now()
	existing, err := m.hours.GetFirstWhere(ctx, store.Where(
		store.Eq("gym_location_id", locationID),
		store.Eq("day_of_week", *req.DayOfWeek),
	))
	switch {
	case errors.Is(err, store.ErrNotFound):
		wh := &WorkingHours{
			GymLocationID: locationID,
			DayOfWeek:     *req.DayOfWeek,
			OpenTime:      open,
			CloseTime:     closeAt,
			IsClosed:      req.IsClosed,
			CreatedAt:     now,
			UpdatedAt:     now,
			IsActive:      true,
		}
		if err := m.hours.Add(ctx, wh); err != nil {
			return nil, apperr.Unexpected("gym.SetWorkingHours", err)
		}
		return wh, nil
	case err != nil:
		return nil, apperr.Unexpected("gym.SetWorkingHours", err)
	}

	existing.OpenTime = open
	existing.CloseTime = closeAt
	existing.IsClosed = req.IsClosed
	existing.UpdatedAt = now
	if err := m.hours.Update(ctx, existing); err != nil {
		return nil, apperr.Unexpected("gym.SetWorkingHours", err)
	}
	return existing, nil
}

func (m *manager) requireLocation(ctx context.Context, id int) error {
	_, err := m.locations.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrLocationNotFound
	}
	if err != nil {
		return apperr.Unexpected("gym.requireLocation", err)
	}
	return nil
}
