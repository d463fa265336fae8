package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found or has been soft-deleted.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates a transfer source balance below the requested amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidBudget indicates a budget that cannot be used as a usage denominator.
var ErrInvalidBudget = errors.New("invalid budget")

// ErrUnauthorized indicates a missing or invalid identity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates an identity without the privileges for the action.
var ErrForbidden = errors.New("forbidden")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// AppError carries an HTTP-style code next to the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError builds an AppError. A nil err is replaced by ErrInternal.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil {
		err = ErrInternal
	}
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps an error onto the status code used by the response envelope.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInsufficientFunds):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidBudget):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
