package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/cafepos/internal/domain/money"
)

// TaxPolicy computes the tax due on an (already discounted) amount.
type TaxPolicy interface {
	TaxOn(amount money.Money) money.Money
	Percent() int
}

// FixedRateTaxPolicy applies a single flat tax rate.
type FixedRateTaxPolicy struct {
	percent int
}

// NewFixedRateTaxPolicy creates a flat-rate tax policy.
func NewFixedRateTaxPolicy(percent int) (*FixedRateTaxPolicy, error) {
	if percent < 0 {
		return nil, ErrNegativePercent
	}
	return &FixedRateTaxPolicy{percent: percent}, nil
}

// TaxOn returns amount * percent / 100, rounded half-up.
func (p *FixedRateTaxPolicy) TaxOn(amount money.Money) money.Money {
	t := amount.Decimal().
		Mul(decimal.NewFromInt(int64(p.percent))).
		Div(hundred)
	return mustMoney(t)
}

// Percent returns the configured rate for display on receipts.
func (p *FixedRateTaxPolicy) Percent() int {
	return p.percent
}
