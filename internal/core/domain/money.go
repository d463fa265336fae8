package domain

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// MinorUnitScale is the number of fractional digits carried by Money.
const MinorUnitScale = 2

// Money is an amount in minor currency units (cents). All ledger arithmetic
// happens on this integer form.
type Money int64

// MoneyFromDecimal converts a stored NUMERIC value into minor units.
// Values with more than two fractional digits are rejected.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	shifted := d.Shift(MinorUnitScale)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than %d fractional digits", d.String(), MinorUnitScale)
	}
	return Money(shifted.IntPart()), nil
}

// ParseMoney parses a display string such as "100.5" into minor units.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return MoneyFromDecimal(d)
}

// Decimal returns the amount in major units, suitable for NUMERIC(14,2) columns.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -MinorUnitScale)
}

// String renders the display form: major units with trailing fractional zeros trimmed.
func (m Money) String() string {
	return m.Decimal().String()
}

func (m Money) Neg() Money { return -m }

func (m Money) IsNegative() bool { return m < 0 }

// Int64 returns the raw minor-unit count.
func (m Money) Int64() int64 { return int64(m) }

// MarshalJSON emits minor units as an integer.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(int64(m), 10)), nil
}

// UnmarshalJSON accepts an integer count of minor units.
func (m *Money) UnmarshalJSON(b []byte) error {
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("amount must be an integer number of minor units: %w", err)
	}
	*m = Money(v)
	return nil
}
