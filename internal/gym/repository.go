package gym

import (
	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/jmoiron/sqlx"
)

var locationSchema = store.Schema[Location]{
	Table:   "gym_locations",
	Columns: []string{"id", "name", "address", "created_at", "updated_at", "is_active"},
	Insert:  []string{"name", "address", "created_at", "updated_at", "is_active"},
	Update:  []string{"name", "address", "updated_at"},
	ID:      func(l *Location) int { return l.ID },
	Args: func(l *Location) map[string]interface{} {
		return map[string]interface{}{
			"name":       l.Name,
			"address":    l.Address,
			"created_at": l.CreatedAt,
			"updated_at": l.UpdatedAt,
			"is_active":  l.IsActive,
		}
	},
}

var serviceSchema = store.Schema[Service]{
	Table:   "services",
	Columns: []string{"id", "gym_location_id", "name", "duration_minutes", "price", "created_at", "updated_at", "is_active"},
	Insert:  []string{"gym_location_id", "name", "duration_minutes", "price", "created_at", "updated_at", "is_active"},
	Update:  []string{"name", "duration_minutes", "price", "updated_at"},
	ID:      func(s *Service) int { return s.ID },
	Args: func(s *Service) map[string]interface{} {
		return map[string]interface{}{
			"gym_location_id":  s.GymLocationID,
			"name":             s.Name,
			"duration_minutes": s.DurationMinutes,
			"price":            s.Price,
			"created_at":       s.CreatedAt,
			"updated_at":       s.UpdatedAt,
			"is_active":        s.IsActive,
		}
	},
}

var workingHoursSchema = store.Schema[WorkingHours]{
	Table:   "working_hours",
	Columns: []string{"id", "gym_location_id", "day_of_week", "open_time", "close_time", "is_closed", "created_at", "updated_at", "is_active"},
	Insert:  []string{"gym_location_id", "day_of_week", "open_time", "close_time", "is_closed", "created_at", "updated_at", "is_active"},
	Update:  []string{"open_time", "close_time", "is_closed", "updated_at"},
	ID:      func(w *WorkingHours) int { return w.ID },
	Args: func(w *WorkingHours) map[string]interface{} {
		return map[string]interface{}{
			"gym_location_id": w.GymLocationID,
			"day_of_week":     w.DayOfWeek,
			"open_time":       w.OpenTime,
			"close_time":      w.CloseTime,
			"is_closed":       w.IsClosed,
			"created_at":      w.CreatedAt,
			"updated_at":      w.UpdatedAt,
			"is_active":       w.IsActive,
		}
	},
}

func NewLocationRepository(db *sqlx.DB, clk clock.Clock) store.Repository[Location] {
	return store.NewTable(db, locationSchema, clk)
}

func NewServiceRepository(db *sqlx.DB, clk clock.Clock) store.Repository[Service] {
	return store.NewTable(db, serviceSchema, clk)
}

func NewWorkingHoursRepository(db *sqlx.DB, clk clock.Clock) store.Repository[WorkingHours] {
	return store.NewTable(db, workingHoursSchema, clk)
}
