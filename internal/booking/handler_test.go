package booking

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Wezylnia/GymSystem-sub001/internal/auth"
	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func as(role string, userID int) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_role", role)
		c.Set("user_id", userID)
		c.Next()
	}
}

func setupRouter(h *harness, role string, userID int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(as(role, userID))
	handler := NewHandler(h.evaluator, h.booker, h.finder)
	router.POST("/appointments", handler.BookAppointment)
	router.GET("/trainers/:trainerID/availability", handler.TrainerAvailability)
	router.GET("/members/:memberID/availability", handler.MemberAvailability)
	router.GET("/services/:serviceID/available-trainers", handler.AvailableTrainers)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHandler_BookAppointment_Created(t *testing.T) {
	h := newHarness()
	h.trainerAppointments(trainerID)
	h.trainerWindows(trainerID, time.Monday, window(trainerID, 9, 17))
	h.memberAppointments(memberID)
	h.services.On("GetByID", mock.Anything, serviceID).Return(personalTraining, nil)
	h.locationHours(gymID, time.Monday, openAllWeek(time.Monday))
	h.appointments.On("Add", mock.Anything, mock.Anything).Return(nil)

	w := postJSON(setupRouter(h, auth.RoleMember, memberID), "/appointments",
		`{"member_id":1,"trainer_id":5,"service_id":7,"start":"2025-03-03T10:00:00","duration_minutes":60}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
	assert.Contains(t, w.Body.String(), `"success":true`)
}

func TestHandler_BookAppointment_Conflict(t *testing.T) {
	h := newHarness()
	h.trainerAppointments(trainerID, booked(40, 2, trainerID, mondayAt(10, 0), 60))

	w := postJSON(setupRouter(h, auth.RoleStaff, 99), "/appointments",
		`{"member_id":1,"trainer_id":5,"service_id":7,"start":"2025-03-03T10:30:00","duration_minutes":60}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"TRAINER_BUSY"`)
}

func TestHandler_BookAppointment_ForOtherMember(t *testing.T) {
	h := newHarness()

	w := postJSON(setupRouter(h, auth.RoleMember, 2), "/appointments",
		`{"member_id":1,"trainer_id":5,"service_id":7,"start":"2025-03-03T10:00:00","duration_minutes":60}`)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_BookAppointment_Validation(t *testing.T) {
	h := newHarness()
	router := setupRouter(h, auth.RoleAdmin, 1)

	w := postJSON(router, "/appointments", `{"member_id":1,"trainer_id":5,"service_id":7,"start":"2025-03-03T10:00:00"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "durationminutes is required")

	w = postJSON(router, "/appointments", `{"member_id":1,"trainer_id":5,"service_id":7,"start":"soon","duration_minutes":60}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestHandler_TrainerAvailability(t *testing.T) {
	h := newHarness()
	h.trainerAppointments(trainerID)
	h.trainerWindows(trainerID, time.Monday, window(trainerID, 9, 17))

	w := get(setupRouter(h, auth.RoleMember, memberID), "/trainers/5/availability?start=2025-03-03T17:30:00&duration=30")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"available":false`)
	assert.Contains(t, w.Body.String(), `"code":"TRAINER_UNAVAILABLE"`)
}

func TestHandler_TrainerAvailability_BusyHidesConflictFromMembers(t *testing.T) {
	h := newHarness()
	h.trainerAppointments(trainerID, booked(40, 9, trainerID, mondayAt(10, 0), 60))

	w := get(setupRouter(h, auth.RoleMember, memberID), "/trainers/5/availability?start=2025-03-03T10:30:00&duration=60")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"TRAINER_BUSY"`)
	assert.NotContains(t, w.Body.String(), "conflict_id")
}

func TestHandler_TrainerAvailability_BusyShowsConflictToStaff(t *testing.T) {
	h := newHarness()
	h.trainerAppointments(trainerID, booked(40, 9, trainerID, mondayAt(10, 0), 60))

	w := get(setupRouter(h, auth.RoleStaff, 1), "/trainers/5/availability?start=2025-03-03T10:30:00&duration=60")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"TRAINER_BUSY"`)
	assert.Contains(t, w.Body.String(), `"conflict_id":40`)
}

func TestHandler_TrainerAvailability_BadQuery(t *testing.T) {
	h := newHarness()
	router := setupRouter(h, auth.RoleMember, memberID)

	assert.Equal(t, http.StatusBadRequest, get(router, "/trainers/5/availability?duration=30").Code)
	assert.Equal(t, http.StatusBadRequest, get(router, "/trainers/5/availability?start=2025-03-03T10:00:00&duration=x").Code)
}

func TestHandler_MemberAvailability_Forbidden(t *testing.T) {
	h := newHarness()

	w := get(setupRouter(h, auth.RoleMember, 2), "/members/1/availability?start=2025-03-03T10:00:00&duration=30")

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandler_AvailableTrainers_UnknownService(t *testing.T) {
	h := newHarness()
	h.services.On("GetByID", mock.Anything, 404).Return(nil, store.ErrNotFound)

	w := get(setupRouter(h, auth.RoleMember, memberID), "/services/404/available-trainers?start=2025-03-03T10:00:00&duration=60")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "SERVICE_NOT_FOUND")
}
