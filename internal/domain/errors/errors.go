package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("duplicate unique key")
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrNotTeamMember    = errors.New("not a team member")
	ErrInsufficientRole = errors.New("insufficient role")
	ErrUnauthorized     = errors.New("unauthorized")
)

// AppError represents application error with HTTP status
type AppError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
		Err:     err,
	}
}

// Common error constructors
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, ErrNotFound)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, message, ErrConflict)
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, ErrInvalidInput)
}

func Unauthenticated(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message, ErrUnauthenticated)
}

func NotTeamMember(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrNotTeamMember)
}

func InsufficientRole(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrInsufficientRole)
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusForbidden, message, ErrUnauthorized)
}

func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "internal server error", err)
}
