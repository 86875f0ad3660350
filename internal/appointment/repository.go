package appointment

import (
	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/jmoiron/sqlx"
)

// ends_at is generated by Postgres, so it is read but never written.
var schema = store.Schema[Appointment]{
	Table: "appointments",
	Columns: []string{
		"id", "member_id", "trainer_id", "service_id", "appointment_date", "duration_minutes",
		"ends_at", "price", "status", "notes", "created_at", "updated_at", "is_active",
	},
	Insert: []string{
		"member_id", "trainer_id", "service_id", "appointment_date", "duration_minutes",
		"price", "status", "notes", "created_at", "updated_at", "is_active",
	},
	Update: []string{"status", "notes", "updated_at"},
	ID:     func(a *Appointment) int { return a.ID },
	Args: func(a *Appointment) map[string]interface{} {
		return map[string]interface{}{
			"member_id":        a.MemberID,
			"trainer_id":       a.TrainerID,
			"service_id":       a.ServiceID,
			"appointment_date": a.AppointmentDate,
			"duration_minutes": a.DurationMinutes,
			"price":            a.Price,
			"status":           a.Status,
			"notes":            a.Notes,
			"created_at":       a.CreatedAt,
			"updated_at":       a.UpdatedAt,
			"is_active":        a.IsActive,
		}
	},
}

func NewRepository(db *sqlx.DB, clk clock.Clock) store.Repository[Appointment] {
	return store.NewTable(db, schema, clk)
}
