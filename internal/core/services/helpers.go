package services

import (
	"errors"

	"github.com/SscSPs/pocket_ledger/internal/apperrors"
)

func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
