package pricing

import (
	"github.com/go-faster/errors"

	"github.com/xenking/cafepos/internal/domain/money"
)

// ErrNilPolicy is returned when the pipeline is constructed without a
// discount or tax policy.
var ErrNilPolicy = errors.New("policy required")

// Result is the itemized outcome of one pricing pass. Immutable.
type Result struct {
	Subtotal money.Money `json:"subtotal"`
	Discount money.Money `json:"discount"`
	Tax      money.Money `json:"tax"`
	Total    money.Money `json:"total"`
}

// Service is the pricing pipeline: discount, then tax, then total.
type Service struct {
	discount DiscountPolicy
	tax      TaxPolicy
}

// NewService creates the pipeline. Both policies are required.
func NewService(discount DiscountPolicy, tax TaxPolicy) (*Service, error) {
	if discount == nil {
		return nil, errors.Wrap(ErrNilPolicy, "discount")
	}
	if tax == nil {
		return nil, errors.Wrap(ErrNilPolicy, "tax")
	}
	return &Service{discount: discount, tax: tax}, nil
}

// Price computes discount, discounted amount, tax and total for a subtotal.
// The discounted amount is floored at zero: the shipped policies cap their
// discount at the subtotal, but the DiscountPolicy interface is open and a
// future policy might not.
func (s *Service) Price(subtotal money.Money) Result {
	discount := s.discount.DiscountOf(subtotal)

	discounted, err := subtotal.Sub(discount)
	if err != nil {
		discounted = money.Zero()
	}

	tax := s.tax.TaxOn(discounted)
	total := discounted.Add(tax)

	return Result{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    total,
	}
}
