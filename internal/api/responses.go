package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Wezylnia/GymSystem-sub001/internal/apperr"
	"github.com/Wezylnia/GymSystem-sub001/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      *ErrorBody  `json:"error,omitempty"`
	StatusCode int         `json:"status_code"`
}

type ErrorBody struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Details []ValidationError `json:"details,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

func Respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data, StatusCode: status})
}

// Fail writes err as an error envelope. Unexpected errors are logged with
// their cause and reported with a generic message.
func Fail(c *gin.Context, err error) {
	appErr := apperr.From(c.FullPath(), err)
	if appErr.Kind == apperr.KindUnexpected {
		logger.Error("request failed",
			"op", appErr.Op,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", c.GetString("request_id"),
			"error", appErr.Err,
		)
	}

	status := appErr.Status()
	c.JSON(status, Envelope{
		Success:    false,
		Error:      &ErrorBody{Message: appErr.Message, Code: appErr.Code},
		StatusCode: status,
	})
}

// BadRequest reports a binding or parsing failure. Validator errors are
// expanded per field.
func BadRequest(c *gin.Context, err error) {
	body := &ErrorBody{Message: "invalid request", Code: apperr.CodeInvalidRequest}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		body.Message = "validation failed"
		body.Details = ValidationDetails(verrs)
	} else if err != nil {
		body.Message = err.Error()
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, Envelope{Success: false, Error: body, StatusCode: http.StatusBadRequest})
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success:    false,
		Error:      &ErrorBody{Message: message, Code: code},
		StatusCode: status,
	})
}

func ValidationDetails(verrs validator.ValidationErrors) []ValidationError {
	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required", "required_unless":
		return field + " is required"
	case "gt":
		return field + " must be greater than " + fe.Param()
	case "gte":
		return field + " must be greater than or equal to " + fe.Param()
	case "lte":
		return field + " must be less than or equal to " + fe.Param()
	case "max":
		return field + " must be at most " + fe.Param() + " characters"
	default:
		return field + " is invalid"
	}
}

// ParamID parses a positive integer path parameter. On failure it writes a
// 400 and returns false.
func ParamID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		Abort(c, http.StatusBadRequest, apperr.CodeInvalidRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
