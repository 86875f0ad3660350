package trainer

import (
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
)

type Trainer struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	IsActive  bool      `db:"is_active" json:"is_active"`
}

// Availability is a recurring weekly window in which a trainer can be booked.
// Windows of one trainer may overlap each other; nothing enforces otherwise.
type Availability struct {
	ID        int             `db:"id" json:"id"`
	TrainerID int             `db:"trainer_id" json:"trainer_id"`
	DayOfWeek int             `db:"day_of_week" json:"day_of_week"`
	StartTime clock.TimeOfDay `db:"start_time" json:"start_time"`
	EndTime   clock.TimeOfDay `db:"end_time" json:"end_time"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
	IsActive  bool            `db:"is_active" json:"is_active"`
}

// Contains reports whether [from, to) fits entirely in the window.
func (a Availability) Contains(from, to clock.TimeOfDay) bool {
	return a.StartTime <= from && to <= a.EndTime
}

// Specialty links a trainer to a service they are qualified to deliver.
type Specialty struct {
	ID              int       `db:"id" json:"id"`
	TrainerID       int       `db:"trainer_id" json:"trainer_id"`
	ServiceID       int       `db:"service_id" json:"service_id"`
	ExperienceYears int       `db:"experience_years" json:"experience_years"`
	Certificate     string    `db:"certificate" json:"certificate"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
	IsActive        bool      `db:"is_active" json:"is_active"`
}

type AddAvailabilityRequest struct {
	DayOfWeek *int   `json:"day_of_week" binding:"required,gte=0,lte=6"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}
