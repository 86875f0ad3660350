package appointment

import (
	"errors"
	"io"
	"net/http"

	"github.com/Wezylnia/GymSystem-sub001/internal/api"
	"github.com/Wezylnia/GymSystem-sub001/internal/apperr"
	"github.com/Wezylnia/GymSystem-sub001/internal/auth"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	manager Manager
}

func NewHandler(manager Manager) *Handler {
	return &Handler{manager: manager}
}

// GetAppointment godoc
// @Summary      Get an appointment
// @Tags         appointments
// @Produce      json
// @Param        id  path  int  true  "Appointment ID"
// @Router       /appointments/{id} [get]
func (h *Handler) GetAppointment(c *gin.Context) {
	a, ok := h.load(c)
	if !ok {
		return
	}
	api.Respond(c, http.StatusOK, a)
}

// ConfirmAppointment godoc
// @Summary      Confirm a pending appointment
// @Tags         appointments
// @Produce      json
// @Param        id  path  int  true  "Appointment ID"
// @Router       /appointments/{id}/confirm [post]
func (h *Handler) ConfirmAppointment(c *gin.Context) {
	id, ok := api.ParamID(c, "id")
	if !ok {
		return
	}

	a, err := h.manager.Confirm(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Respond(c, http.StatusOK, a)
}

// CancelAppointment godoc
// @Summary      Cancel an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        id       path  int            true   "Appointment ID"
// @Param        request  body  CancelRequest  false  "Reason"
// @Router       /appointments/{id}/cancel [post]
func (h *Handler) CancelAppointment(c *gin.Context) {
	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		api.BadRequest(c, err)
		return
	}

	a, ok := h.load(c)
	if !ok {
		return
	}

	a, err := h.manager.Cancel(c.Request.Context(), a.ID, req.Reason)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Respond(c, http.StatusOK, a)
}

// ListMemberAppointments godoc
// @Summary      Appointments of a member
// @Tags         appointments
// @Produce      json
// @Param        memberID  path   int     true   "Member ID"
// @Param        status    query  string  false  "pending, confirmed, cancelled or completed"
// @Router       /members/{memberID}/appointments [get]
func (h *Handler) ListMemberAppointments(c *gin.Context) {
	memberID, ok := api.ParamID(c, "memberID")
	if !ok || !auth.ForbidUnlessActingFor(c, memberID) {
		return
	}
	status, ok := statusQuery(c)
	if !ok {
		return
	}

	items, err := h.manager.ListByMember(c.Request.Context(), memberID, status)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Respond(c, http.StatusOK, items)
}

// ListTrainerAppointments godoc
// @Summary      Appointments of a trainer
// @Tags         appointments
// @Produce      json
// @Param        trainerID  path   int     true   "Trainer ID"
// @Param        status     query  string  false  "pending, confirmed, cancelled or completed"
// @Router       /trainers/{trainerID}/appointments [get]
func (h *Handler) ListTrainerAppointments(c *gin.Context) {
	trainerID, ok := api.ParamID(c, "trainerID")
	if !ok {
		return
	}
	status, ok := statusQuery(c)
	if !ok {
		return
	}

	items, err := h.manager.ListByTrainer(c.Request.Context(), trainerID, status)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Respond(c, http.StatusOK, items)
}

// load fetches the appointment named by the id parameter and checks that
// the caller may see it. Members get 404 for appointments of others.
func (h *Handler) load(c *gin.Context) (*Appointment, bool) {
	id, ok := api.ParamID(c, "id")
	if !ok {
		return nil, false
	}

	a, err := h.manager.Get(c.Request.Context(), id)
	if err != nil {
		api.Fail(c, err)
		return nil, false
	}
	if !auth.CanActFor(c, a.MemberID) {
		api.Fail(c, ErrNotFound)
		return nil, false
	}
	return a, true
}

func statusQuery(c *gin.Context) (Status, bool) {
	raw := c.Query("status")
	if raw == "" {
		return "", true
	}
	status, ok := ParseStatus(raw)
	if !ok {
		api.Abort(c, http.StatusBadRequest, apperr.CodeInvalidRequest, "unknown status "+raw)
		return "", false
	}
	return status, true
}
