// Package money implements fixed-point currency arithmetic in integer minor
// units (cents). Conversion to and from decimal representations happens only
// at the boundary; every rounding step uses round half away from zero.
package money

import (
	"math"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is an amount in minor currency units. The zero value is zero cents.
type Money int64

// FromMinorUnits wraps a raw minor-unit count.
func FromMinorUnits(n int64) Money {
	return Money(n)
}

// FromFloat converts a major-unit amount (e.g. 50.00) to Money.
func FromFloat(amount float64) Money {
	return Money(roundHalfAway(amount * 100))
}

// FromString parses a decimal string such as "230.00" exactly.
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return FromDecimal(d), nil
}

// FromDecimal converts an exact decimal to Money.
func FromDecimal(d decimal.Decimal) Money {
	cents := d.Mul(decimal.NewFromInt(100)).Round(0)
	return Money(cents.IntPart())
}

// Add returns m + other.
func (m Money) Add(other Money) Money { return m + other }

// Sub returns m - other. Negative results are allowed; callers clamp where the
// domain requires non-negative balances.
func (m Money) Sub(other Money) Money { return m - other }

// MulFloat scales by an arbitrary factor (quantity, tax rate fraction) and
// rounds the result back to a whole minor unit.
func (m Money) MulFloat(factor float64) Money {
	return Money(roundHalfAway(float64(m) * factor))
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool { return m < 0 }

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool { return m == 0 }

// MinorUnits returns the raw minor-unit count.
func (m Money) MinorUnits() int64 { return int64(m) }

// Float64 returns the major-unit value for serialization.
func (m Money) Float64() float64 { return float64(m) / 100 }

// Decimal returns the exact major-unit decimal value.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// String renders the amount with two decimal places, e.g. "230.00".
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

var displayPrinter = message.NewPrinter(language.English)

// Format renders a grouped display string with a currency symbol, e.g.
// "R 1,234.56".
func (m Money) Format(symbol string) string {
	major := float64(m) / 100
	if symbol == "" {
		return displayPrinter.Sprintf("%.2f", major)
	}
	return displayPrinter.Sprintf("%s %.2f", symbol, major)
}

// MarshalJSON encodes the amount as a plain decimal number, e.g. 230.00.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string and
// rounds to the nearest minor unit.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*m = FromDecimal(d)
	return nil
}

// Max returns the larger of two amounts.
func Max(a, b Money) Money {
	if a > b {
		return a
	}
	return b
}

func roundHalfAway(f float64) int64 {
	if f < 0 {
		return int64(math.Ceil(f - 0.5))
	}
	return int64(math.Floor(f + 0.5))
}
