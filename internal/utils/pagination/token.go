package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/pocket_ledger/internal/core/domain"
)

// DefaultLimit and MaxLimit bound page sizes of list endpoints.
const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// ClampLimit maps a requested page size onto [1, MaxLimit], defaulting zero.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decoded), "|"), nil
}

// EncodeBillCursor creates the token pointing just past bill b.
func EncodeBillCursor(b domain.Bill) string {
	return EncodeMultiFieldToken(strconv.FormatInt(b.Date, 10), b.ID)
}

// DecodeBillCursor parses a token built by EncodeBillCursor.
func DecodeBillCursor(token string) (*domain.BillCursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return nil, err
	}
	if len(parts) != 2 || parts[1] == "" {
		return nil, fmt.Errorf("invalid pagination token format (split)")
	}
	date, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (date parse): %w", err)
	}
	return &domain.BillCursor{Date: date, ID: parts[1]}, nil
}
