package trainer

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

// ListAvailability godoc
// @Summary      Weekly availability windows of a trainer
// @Tags         trainers
// @Produce      json
// @Param        trainerID  path  int  true  "Trainer ID"
// @Router       /trainers/{trainerID}/windows [get]
func (h *Handler) ListAvailability(c *gin.Context) {
	trainerID, ok := api.ParamID(c, "trainerID")
	if !ok {
		return
	}

	windows, err := h.manager.ListAvailability(c.Request.Context(), trainerID)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Respond(c, http.StatusOK, windows)
}

// AddAvailability godoc
// @Summary      Add a weekly availability window
// @Tags         admin,trainers
// @Accept       json
// @Produce      json
// @Param        trainerID  path  int                     true  "Trainer ID"
// @Param        request    body  AddAvailabilityRequest  true  "Window"
// @Router       /admin/trainers/{trainerID}/windows [post]
func (h *Handler) AddAvailability(c *gin.Context) {
	trainerID, ok := api.ParamID(c, "trainerID")
	if !ok {
		return
	}

	var req AddAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}

	window, err := h.manager.AddAvailability(c.Request.Context(), trainerID, req)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Respond(c, http.StatusCreated, window)
}

// RemoveAvailability godoc
// @Summary      Remove a weekly availability window
// @Tags         admin,trainers
// @Param        trainerID  path  int  true  "Trainer ID"
// @Param        windowID   path  int  true  "Window ID"
// @Router       /admin/trainers/{trainerID}/windows/{windowID} [delete]
func (h *Handler) RemoveAvailability(c *gin.Context) {
	trainerID, ok := api.ParamID(c, "trainerID")
	if !ok {
		return
	}
	windowID, ok := api.ParamID(c, "windowID")
	if !ok {
		return
	}

	if err := h.manager.RemoveAvailability(c.Request.Context(), trainerID, windowID); err != nil {
		api.Fail(c, err)
		return
	}

	api.Respond(c, http.StatusOK, gin.H{"message": "availability window removed"})
}
