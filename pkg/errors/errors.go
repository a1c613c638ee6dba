package errors

import (
	"errors"
	"fmt"
	"net/http"
)

type AppError struct {
	Code    string
	Message string
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code string, message string, status int, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found", resource),
		Status:  http.StatusNotFound,
		Err:     err,
	}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    "BAD_REQUEST",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

func Unauthorized(message string, err error) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     err,
	}
}

// Internal is what every backend failure collapses into. The message is
// the one shown to the user, the cause stays in Err for the logs.
func Internal(message string, err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func Is(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func Forbidden(message string, err error) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     err,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
	}
}

func TooManyRequests(message string) *AppError {
	return &AppError{
		Code:    "TOO_MANY_REQUESTS",
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// Identity errors

func UnverifiedEmail() *AppError {
	return &AppError{
		Code:    "UNVERIFIED_EMAIL",
		Message: "Please verify your email before logging in. Check your inbox for the verification link.",
		Status:  http.StatusForbidden,
	}
}

func RoleNotFound() *AppError {
	return &AppError{
		Code:    "ROLE_NOT_FOUND",
		Message: "User not found in either movers or clients.",
		Status:  http.StatusNotFound,
	}
}

func RoleConflict(existingRole string) *AppError {
	return &AppError{
		Code:    "ROLE_CONFLICT",
		Message: fmt.Sprintf("This account is already registered as a %s. Each user can only have one role. Please use a different email address.", existingRole),
		Status:  http.StatusConflict,
	}
}

func AdminOnly() *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: "This login is for administrators only. Please use the regular login page.",
		Status:  http.StatusForbidden,
	}
}

// Workflow errors

func MoverNotVerified() *AppError {
	return &AppError{
		Code:    "MOVER_NOT_VERIFIED",
		Message: "Your account is pending verification. You cannot send quotes until an admin approves your credentials.",
		Status:  http.StatusForbidden,
	}
}

func InvalidTransition(from, to string) *AppError {
	return &AppError{
		Code:    "INVALID_TRANSITION",
		Message: fmt.Sprintf("cannot change booking status from %s to %s", from, to),
		Status:  http.StatusConflict,
	}
}

func AlreadyReviewed() *AppError {
	return &AppError{
		Code:    "ALREADY_REVIEWED",
		Message: "You have already reviewed this booking",
		Status:  http.StatusConflict,
	}
}

func NotReviewable() *AppError {
	return &AppError{
		Code:    "NOT_REVIEWABLE",
		Message: "Only accepted bookings can be reviewed",
		Status:  http.StatusConflict,
	}
}
