// Package money provides a non-negative fixed-point monetary value with two
// fractional digits. Rounding (half-up) happens exactly once, at construction;
// every arithmetic operation returns a freshly constructed value, so derived
// amounts never accumulate sub-cent drift.
package money

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount is returned when a constructed amount rounds to a
	// negative value.
	ErrInvalidAmount = errors.New("amount cannot be negative")
	// ErrNegativeResult is returned by Sub when the difference is negative.
	ErrNegativeResult = errors.New("result cannot be negative")
	// ErrInvalidQuantity is returned by MulInt for negative quantities.
	ErrInvalidQuantity = errors.New("quantity cannot be negative")
)

// Money is an immutable monetary value. The zero value is 0.00.
type Money struct {
	amount decimal.Decimal
}

// New constructs a Money from an arbitrary decimal, rounding half-up to two
// fractional digits. The rounded value must not be negative.
func New(d decimal.Decimal) (Money, error) {
	r := d.Round(2)
	if r.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	return Money{amount: r}, nil
}

// FromFloat constructs a Money from a float64.
func FromFloat(v float64) (Money, error) {
	return New(decimal.NewFromFloat(v))
}

// FromString constructs a Money from a decimal string such as "2.50".
func FromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errors.Wrap(err, "parse amount")
	}
	return New(d)
}

// MustParse is FromString that panics on error. Intended for fixed catalog
// constants, not for external input.
func MustParse(s string) Money {
	m, err := FromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Zero returns the additive identity, 0.00.
func Zero() Money {
	return Money{}
}

// Add returns the sum of m and other. Both operands are already rounded, so
// the sum is exact and cannot violate the non-negativity invariant.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference m - other, or ErrNegativeResult when the
// difference is negative.
func (m Money) Sub(other Money) (Money, error) {
	r := m.amount.Sub(other.amount)
	if r.IsNegative() {
		return Money{}, ErrNegativeResult
	}
	return Money{amount: r}, nil
}

// MulInt returns m multiplied by a non-negative integer quantity.
func (m Money) MulInt(qty int) (Money, error) {
	if qty < 0 {
		return Money{}, ErrInvalidQuantity
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(qty)))}, nil
}

// Cmp compares m and other by rounded numeric value, returning -1, 0 or 1.
func (m Money) Cmp(other Money) int {
	return m.amount.Cmp(other.amount)
}

// Equal reports whether m and other hold the same rounded value.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// IsZero reports whether m is exactly 0.00.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether m > 0.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Decimal returns the underlying rounded decimal, e.g. for NUMERIC columns.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the value with exactly two fractional digits, e.g. "2.50".
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// MarshalJSON encodes the value as a quoted fixed-point string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON decodes either a quoted decimal string or a bare JSON number,
// enforcing the construction invariants.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := FromString(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
