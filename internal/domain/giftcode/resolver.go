package giftcode

import (
	"context"
	"strings"

	"github.com/go-faster/errors"

	"github.com/xenking/cafepos/internal/domain/pricing"
)

// Resolver turns a gift code into the discount policy it is worth.
type Resolver struct {
	repo Repository
}

// NewResolver creates a Resolver backed by the given Repository.
func NewResolver(repo Repository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve looks up the code (case-insensitive, surrounding whitespace
// ignored), records the redemption, and returns a fixed coupon discount for
// the code's amount. Unknown codes return ErrUnknownCode.
func (r *Resolver) Resolve(ctx context.Context, code string) (pricing.DiscountPolicy, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, ErrUnknownCode
	}

	c, err := r.repo.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, ErrUnknownCode) {
			return nil, ErrUnknownCode
		}
		return nil, errors.Wrap(err, "lookup gift code")
	}

	if err := r.repo.IncrementRedemptions(ctx, normalized); err != nil {
		return nil, errors.Wrap(err, "record redemption")
	}

	return pricing.NewFixedCouponDiscount(c.Amount), nil
}
