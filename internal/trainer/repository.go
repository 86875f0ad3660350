package trainer

import (
	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/jmoiron/sqlx"
)

var trainerSchema = store.Schema[Trainer]{
	Table:   "trainers",
	Columns: []string{"id", "name", "email", "created_at", "updated_at", "is_active"},
	Insert:  []string{"name", "email", "created_at", "updated_at", "is_active"},
	Update:  []string{"name", "email", "updated_at"},
	ID:      func(t *Trainer) int { return t.ID },
	Args: func(t *Trainer) map[string]interface{} {
		return map[string]interface{}{
			"name":       t.Name,
			"email":      t.Email,
			"created_at": t.CreatedAt,
			"updated_at": t.UpdatedAt,
			"is_active":  t.IsActive,
		}
	},
}

var availabilitySchema = store.Schema[Availability]{
	Table:   "trainer_availabilities",
	Columns: []string{"id", "trainer_id", "day_of_week", "start_time", "end_time", "created_at", "updated_at", "is_active"},
	Insert:  []string{"trainer_id", "day_of_week", "start_time", "end_time", "created_at", "updated_at", "is_active"},
	Update:  []string{"start_time", "end_time", "updated_at"},
	ID:      func(a *Availability) int { return a.ID },
	Args: func(a *Availability) map[string]interface{} {
		return map[string]interface{}{
			"trainer_id":  a.TrainerID,
			"day_of_week": a.DayOfWeek,
			"start_time":  a.StartTime,
			"end_time":    a.EndTime,
			"created_at":  a.CreatedAt,
			"updated_at":  a.UpdatedAt,
			"is_active":   a.IsActive,
		}
	},
}

var specialtySchema = store.Schema[Specialty]{
	Table:   "trainer_specialties",
	Columns: []string{"id", "trainer_id", "service_id", "experience_years", "certificate", "created_at", "updated_at", "is_active"},
	Insert:  []string{"trainer_id", "service_id", "experience_years", "certificate", "created_at", "updated_at", "is_active"},
	Update:  []string{"experience_years", "certificate", "updated_at"},
	ID:      func(s *Specialty) int { return s.ID },
	Args: func(s *Specialty) map[string]interface{} {
		return map[string]interface{}{
			"trainer_id":       s.TrainerID,
			"service_id":       s.ServiceID,
			"experience_years": s.ExperienceYears,
			"certificate":      s.Certificate,
			"created_at":       s.CreatedAt,
			"updated_at":       s.UpdatedAt,
			"is_active":        s.IsActive,
		}
	},
}

func NewTrainerRepository(db *sqlx.DB, clk clock.Clock) store.Repository[Trainer] {
	return store.NewTable(db, trainerSchema, clk)
}

func NewAvailabilityRepository(db *sqlx.DB, clk clock.Clock) store.Repository[Availability] {
	return store.NewTable(db, availabilitySchema, clk)
}

func NewSpecialtyRepository(db *sqlx.DB, clk clock.Clock) store.Repository[Specialty] {
	return store.NewTable(db, specialtySchema, clk)
}
