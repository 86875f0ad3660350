package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindConflict
	KindInvalid
)

const (
	CodeTrainerBusy           = "TRAINER_BUSY"
	CodeTrainerUnavailable    = "TRAINER_UNAVAILABLE"
	CodeMemberBusy            = "MEMBER_BUSY"
	CodeServiceNotFound       = "SERVICE_NOT_FOUND"
	CodeLocationClosed        = "LOCATION_CLOSED"
	CodeAppointmentNotFound   = "APPOINTMENT_NOT_FOUND"
	CodeNotPending            = "NOT_PENDING"
	CodeAlreadyCancelled      = "ALREADY_CANCELLED"
	CodeCannotCancelCompleted = "CANNOT_CANCEL_COMPLETED"
	CodeReferenceNotFound     = "REFERENCE_NOT_FOUND"
	CodeLocationNotFound      = "LOCATION_NOT_FOUND"
	CodeTrainerNotFound       = "TRAINER_NOT_FOUND"
	CodeAvailabilityNotFound  = "AVAILABILITY_NOT_FOUND"
	CodeInvalidInterval       = "INVALID_INTERVAL"
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeInternal              = "INTERNAL_ERROR"
)

const internalMessage = "internal server error"

// Error is the only error type that leaves a public service operation.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	// Op and Err are diagnostic only and never shown to callers.
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindInvalid:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func NotFound(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func Conflict(code, message string) *Error {
	return &Error{Kind: KindConflict, Code: code, Message: message}
}

func Invalid(message string) *Error {
	return &Error{Kind: KindInvalid, Code: CodeInvalidRequest, Message: message}
}

// InvalidWithCode is Invalid with a more specific code.
func InvalidWithCode(code, message string) *Error {
	return &Error{Kind: KindInvalid, Code: code, Message: message}
}

func Unexpected(op string, err error) *Error {
	return &Error{Kind: KindUnexpected, Code: CodeInternal, Message: internalMessage, Op: op, Err: err}
}

// From returns err as *Error, treating anything else as unexpected.
func From(op string, err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Unexpected(op, err)
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code string) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Code == code
}

func IsNotFound(err error) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == KindNotFound
}
