package gym

import (
	"net/http"

	"github.com/Wezylnia/GymSystem-sub001/internal/api"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	manager Manager
}

func NewHandler(manager Manager) *Handler {
	return &Handler{manager: manager}
}

// ListWorkingHours godoc
// @Summary      Weekly opening hours of a location
// @Tags         locations
// @Produce      json
// @Param        locationID  path  int  true  "Gym location ID"
// @Router       /locations/{locationID}/working-hours [get]
func (h *Handler) ListWorkingHours(c *gin.Context) {
	locationID, ok := api.ParamID(c, "locationID")
	if !ok {
		return
	}

	hours, err := h.manager.ListWorkingHours(c.Request.Context(), locationID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Respond(c, http.StatusOK, hours)
}

// SetWorkingHours godoc
// @Summary      Set opening hours for one weekday
// @Description  Admin only. Replaces the window for the given day.
// @Tags         admin,locations
// @Accept       json
// @Produce      json
// @Param        locationID  path  int                     true  "Gym location ID"
// @Param        request     body  SetWorkingHoursRequest  true  "Opening window"
// @Router       /admin/locations/{locationID}/working-hours [put]
func (h *Handler) SetWorkingHours(c *gin.Context) {
	locationID, ok := api.ParamID(c, "locationID")
	if !ok {
		return
	}

	var req SetWorkingHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}

	wh, err := h.manager.SetWorkingHours(c.Request.Context(), locationID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Respond(c, http.StatusOK, wh)
}
