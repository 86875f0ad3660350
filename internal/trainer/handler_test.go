package trainer

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Wezylnia/GymSystem-sub001/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupRouter(m Manager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewHandler(m)
	router.GET("/trainers/:trainerID/windows", h.ListAvailability)
	router.POST("/admin/trainers/:trainerID/windows", h.AddAvailability)
	router.DELETE("/admin/trainers/:trainerID/windows/:windowID", h.RemoveAvailability)
	return router
}

func TestHandler_AddAvailability(t *testing.T) {
	m, tr, ar := newTestManager()
	tr.On("GetByID", mock.Anything, 3).Return(&Trainer{ID: 3}, nil)
	ar.On("Add", mock.Anything, mock.AnythingOfType("*trainer.Availability")).Return(nil)

	router := setupRouter(m)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/admin/trainers/3/windows",
		bytes.NewBufferString(`{"day_of_week":1,"start_time":"09:00","end_time":"17:00"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"start_time":"09:00"`)
}

func TestHandler_AddAvailability_InvertedWindow(t *testing.T) {
	m, _, _ := newTestManager()
	router := setupRouter(m)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/admin/trainers/3/windows",
		bytes.NewBufferString(`{"day_of_week":1,"start_time":"17:00","end_time":"09:00"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_REQUEST")
}

func TestHandler_ListAvailability_UnknownTrainer(t *testing.T) {
	m, tr, _ := newTestManager()
	tr.On("GetByID", mock.Anything, 9).Return(nil, store.ErrNotFound)

	router := setupRouter(m)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/trainers/9/windows", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "TRAINER_NOT_FOUND")
}

func TestHandler_RemoveAvailability(t *testing.T) {
	m, _, ar := newTestManager()
	ar.On("GetByID", mock.Anything, 10).Return(&Availability{ID: 10, TrainerID: 3}, nil)
	ar.On("Delete", mock.Anything, 10).Return(nil)

	router := setupRouter(m)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodDelete, "/admin/trainers/3/windows/10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	ar.AssertExpectations(t)
}
