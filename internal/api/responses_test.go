package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Wezylnia/GymSystem-sub001/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Duration int `json:"duration" binding:"required,gt=0"`
}

func run(t *testing.T, h gin.HandlerFunc, body string) (*httptest.ResponseRecorder, Envelope) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/", h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", stringsReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var env Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func TestRespond(t *testing.T) {
	w, env := run(t, func(c *gin.Context) {
		Respond(c, http.StatusCreated, gin.H{"id": 1})
	}, "{}")

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, http.StatusCreated, env.StatusCode)
	assert.Nil(t, env.Error)
}

func TestFail_BusinessError(t *testing.T) {
	w, env := run(t, func(c *gin.Context) {
		Fail(c, apperr.Conflict(apperr.CodeTrainerBusy, "trainer is already booked at this time"))
	}, "{}")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, apperr.CodeTrainerBusy, env.Error.Code)
}

func TestFail_UnexpectedHidesInternals(t *testing.T) {
	w, env := run(t, func(c *gin.Context) {
		Fail(c, errors.New("pq: relation \"appointments\" does not exist"))
	}, "{}")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, apperr.CodeInternal, env.Error.Code)
	assert.NotContains(t, w.Body.String(), "relation")
}

func TestBadRequest_ValidationDetails(t *testing.T) {
	w, env := run(t, func(c *gin.Context) {
		var p payload
		if err := c.ShouldBindJSON(&p); err != nil {
			BadRequest(c, err)
			return
		}
		Respond(c, http.StatusOK, p)
	}, `{"duration": 0}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, apperr.CodeInvalidRequest, env.Error.Code)
	require.Len(t, env.Error.Details, 1)
	assert.Equal(t, "Duration", env.Error.Details[0].Field)
}

func stringsReader(s string) *strings.Reader {
	return strings.NewReader(s)
}
