// Package pricing turns an order subtotal into a payable total through a
// discount policy followed by a tax policy, and renders the result as a
// receipt.
package pricing

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/cafepos/internal/domain/money"
)

// ErrNegativePercent is returned when a policy is configured with a negative
// percentage.
var ErrNegativePercent = errors.New("percent cannot be negative")

var hundred = decimal.NewFromInt(100)

// DiscountPolicy computes a discount for a given subtotal. Implementations
// must never return an amount exceeding the subtotal; the pipeline still
// clamps defensively.
type DiscountPolicy interface {
	DiscountOf(subtotal money.Money) money.Money
}

// NoDiscount applies no discount.
type NoDiscount struct{}

// DiscountOf always returns zero.
func (NoDiscount) DiscountOf(money.Money) money.Money {
	return money.Zero()
}

// LoyaltyPercentDiscount discounts a fixed percentage of the subtotal.
type LoyaltyPercentDiscount struct {
	percent int
}

// NewLoyaltyPercentDiscount creates a percentage discount policy.
func NewLoyaltyPercentDiscount(percent int) (*LoyaltyPercentDiscount, error) {
	if percent < 0 {
		return nil, ErrNegativePercent
	}
	return &LoyaltyPercentDiscount{percent: percent}, nil
}

// DiscountOf returns subtotal * percent / 100, rounded half-up.
func (d *LoyaltyPercentDiscount) DiscountOf(subtotal money.Money) money.Money {
	amount := subtotal.Decimal().
		Mul(decimal.NewFromInt(int64(d.percent))).
		Div(hundred)
	return mustMoney(amount)
}

// Percent returns the configured percentage.
func (d *LoyaltyPercentDiscount) Percent() int {
	return d.percent
}

// FixedCouponDiscount discounts a fixed amount, capped at the subtotal so the
// discounted amount can never go negative downstream.
type FixedCouponDiscount struct {
	amount money.Money
}

// NewFixedCouponDiscount creates a fixed-amount discount policy.
func NewFixedCouponDiscount(amount money.Money) *FixedCouponDiscount {
	return &FixedCouponDiscount{amount: amount}
}

// DiscountOf returns min(amount, subtotal).
func (d *FixedCouponDiscount) DiscountOf(subtotal money.Money) money.Money {
	if subtotal.LessThan(d.amount) {
		return subtotal
	}
	return d.amount
}

// mustMoney converts a decimal known to be non-negative. All policy inputs
// are non-negative Money values and non-negative percentages, so construction
// cannot fail.
func mustMoney(d decimal.Decimal) money.Money {
	m, err := money.New(d)
	if err != nil {
		panic(errors.Wrap(err, "pricing produced invalid amount"))
	}
	return m
}
