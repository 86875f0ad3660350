package booking

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/api"
	"github.com/Wezylnia/GymSystem-sub001/internal/apperr"
	"github.com/Wezylnia/GymSystem-sub001/internal/auth"
	"github.com/Wezylnia/GymSystem-sub001/internal/clock"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BookRequest struct {
	MemberID        int              `json:"member_id" binding:"required,gt=0"`
	TrainerID       int              `json:"trainer_id" binding:"required,gt=0"`
	ServiceID       int              `json:"service_id" binding:"required,gt=0"`
	Start           string           `json:"start" binding:"required" example:"2025-03-03T10:00:00"`
	DurationMinutes int              `json:"duration_minutes" binding:"required,gt=0"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Notes           string           `json:"notes" binding:"max=1000"`
}

type Handler struct {
	evaluator *Evaluator
	booker    Booker
	finder    *Finder
}

func NewHandler(evaluator *Evaluator, booker Booker, finder *Finder) *Handler {
	return &Handler{evaluator: evaluator, booker: booker, finder: finder}
}

// BookAppointment godoc
// @Summary      Book an appointment
// @Description  Creates a pending appointment when trainer, member and location are all free.
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        request  body  BookRequest  true  "Booking"
// @Router       /appointments [post]
func (h *Handler) BookAppointment(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, err)
		return
	}
	if !auth.ForbidUnlessActingFor(c, req.MemberID) {
		return
	}

	start, err := clock.ParseWall(req.Start)
	if err != nil {
		api.Abort(c, http.StatusBadRequest, apperr.CodeInvalidRequest, "start must look like "+clock.WallLayout)
		return
	}

	a, err := h.booker.BookAppointment(c.Request.Context(), Request{
		MemberID:        req.MemberID,
		TrainerID:       req.TrainerID,
		ServiceID:       req.ServiceID,
		Start:           start,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Notes:           req.Notes,
	})
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Respond(c, http.StatusCreated, a)
}

// TrainerAvailability godoc
// @Summary      Check whether a trainer is free for a slot
// @Tags         availability
// @Produce      json
// @Param        trainerID  path   int     true  "Trainer ID"
// @Param        start      query  string  true  "Slot start, 2006-01-02T15:04:05"
// @Param        duration   query  int     true  "Slot length in minutes"
// @Router       /trainers/{trainerID}/availability [get]
func (h *Handler) TrainerAvailability(c *gin.Context) {
	trainerID, ok := api.ParamID(c, "trainerID")
	if !ok {
		return
	}
	start, duration, ok := slotQuery(c)
	if !ok {
		return
	}

	v, err := h.evaluator.CheckTrainerAvailability(c.Request.Context(), trainerID, start, duration)
	if err != nil {
		api.Fail(c, err)
		return
	}
	// A trainer's appointments belong to other members.
	if role, _ := auth.GetRole(c); role == auth.RoleMember {
		v.ConflictID = 0
	}

	api.Respond(c, http.StatusOK, v)
}

// MemberAvailability godoc
// @Summary      Check whether a member is free for a slot
// @Tags         availability
// @Produce      json
// @Param        memberID  path   int     true  "Member ID"
// @Param        start     query  string  true  "Slot start, 2006-01-02T15:04:05"
// @Param        duration  query  int     true  "Slot length in minutes"
// @Router       /members/{memberID}/availability [get]
func (h *Handler) MemberAvailability(c *gin.Context) {
	memberID, ok := api.ParamID(c, "memberID")
	if !ok || !auth.ForbidUnlessActingFor(c, memberID) {
		return
	}
	start, duration, ok := slotQuery(c)
	if !ok {
		return
	}

	v, err := h.evaluator.CheckMemberAvailability(c.Request.Context(), memberID, start, duration)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Respond(c, http.StatusOK, v)
}

// AvailableTrainers godoc
// @Summary      Trainers who can deliver a service at a slot
// @Tags         availability
// @Produce      json
// @Param        serviceID  path   int     true  "Service ID"
// @Param        start      query  string  true  "Slot start, 2006-01-02T15:04:05"
// @Param        duration   query  int     true  "Slot length in minutes"
// @Router       /services/{serviceID}/available-trainers [get]
func (h *Handler) AvailableTrainers(c *gin.Context) {
	serviceID, ok := api.ParamID(c, "serviceID")
	if !ok {
		return
	}
	start, duration, ok := slotQuery(c)
	if !ok {
		return
	}

	trainers, err := h.finder.FindAvailableTrainers(c.Request.Context(), serviceID, start, duration)
	if err != nil {
		api.Fail(c, err)
		return
	}

	api.Respond(c, http.StatusOK, trainers)
}

func slotQuery(c *gin.Context) (time.Time, int, bool) {
	start, err := clock.ParseWall(c.Query("start"))
	if err != nil {
		api.Abort(c, http.StatusBadRequest, apperr.CodeInvalidRequest, "start must look like "+clock.WallLayout)
		return time.Time{}, 0, false
	}

	duration, err := strconv.Atoi(c.Query("duration"))
	if err != nil {
		api.Abort(c, http.StatusBadRequest, apperr.CodeInvalidRequest, "duration must be a number of minutes")
		return time.Time{}, 0, false
	}
	return start, duration, true
}
