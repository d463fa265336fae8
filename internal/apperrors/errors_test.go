package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found wrapped", fmt.Errorf("%w: asset a1", ErrNotFound), http.StatusNotFound},
		{"validation", fmt.Errorf("%w: month must be YYYY-MM", ErrValidation), http.StatusBadRequest},
		{"insufficient funds", ErrInsufficientFunds, http.StatusBadRequest},
		{"invalid budget", ErrInvalidBudget, http.StatusUnprocessableEntity},
		{"conflict", fmt.Errorf("%w: 2024-05", ErrDuplicate), http.StatusConflict},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"app error code", NewAppError(http.StatusServiceUnavailable, "broker down", errors.New("dial")), http.StatusServiceUnavailable},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := NewAppError(500, "failed to begin transaction", nil)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, "failed to begin transaction: internal error", err.Error())
}
