package gym

import (
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/shopspring/decimal"
)

type Location struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	IsActive  bool      `db:"is_active" json:"is_active"`
}

// Service is a bookable catalog entry offered at one location.
type Service struct {
	ID              int             `db:"id" json:"id"`
	GymLocationID   int             `db:"gym_location_id" json:"gym_location_id"`
	Name            string          `db:"name" json:"name"`
	DurationMinutes int             `db:"duration_minutes" json:"duration_minutes"`
	Price           decimal.Decimal `db:"price" json:"price"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
	IsActive        bool            `db:"is_active" json:"is_active"`
}

// WorkingHours is the weekly opening window of a location for one weekday.
type WorkingHours struct {
	ID            int             `db:"id" json:"id"`
	GymLocationID int             `db:"gym_location_id" json:"gym_location_id"`
	DayOfWeek     int             `db:"day_of_week" json:"day_of_week"`
	OpenTime      clock.TimeOfDay `db:"open_time" json:"open_time"`
	CloseTime     clock.TimeOfDay `db:"close_time" json:"close_time"`
	IsClosed      bool            `db:"is_closed" json:"is_closed"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
	IsActive      bool            `db:"is_active" json:"is_active"`
}

// Covers reports whether [from, to) lies inside the opening window.
// A closed day covers nothing.
func (w WorkingHours) Covers(from, to clock.TimeOfDay) bool {
	return !w.IsClosed && w.OpenTime <= from && to <= w.CloseTime
}

type SetWorkingHoursRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required,gte=0,lte=6"`
	OpenTime  string `json:"open_time" binding:"required_unless=IsClosed true"`
	CloseTime string `json:"close_time" binding:"required_unless=IsClosed true"`
	IsClosed  bool   `json:"is_closed"`
}
