package notify

import (
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/jmoiron/sqlx"
)

// Member is the part of a member record needed to address a notification.
type Member struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
	IsActive  bool      `db:"is_active" json:"is_active"`
}

var memberSchema = store.Schema[Member]{
	Table:   "members",
	Columns: []string{"id", "name", "email", "created_at", "updated_at", "is_active"},
	Insert:  []string{"name", "email", "created_at", "updated_at", "is_active"},
	Update:  []string{"name", "email", "updated_at"},
	ID:      func(m *Member) int { return m.ID },
	Args: func(m *Member) map[string]interface{} {
		return map[string]interface{}{
			"name":       m.Name,
			"email":      m.Email,
			"created_at": m.CreatedAt,
			"updated_at": m.UpdatedAt,
			"is_active":  m.IsActive,
		}
	},
}

func NewMemberRepository(db *sqlx.DB, clk clock.Clock) store.Repository[Member] {
	return store.NewTable(db, memberSchema, clk)
}
