package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/cafepos/internal/domain/money"
)

func taxAt(t *testing.T, percent int) *FixedRateTaxPolicy {
	t.Helper()
	p, err := NewFixedRateTaxPolicy(percent)
	require.NoError(t, err)
	return p
}

func TestNewService_RequiresPolicies(t *testing.T) {
	tax := taxAt(t, 10)

	_, err := NewService(nil, tax)
	require.ErrorIs(t, err, ErrNilPolicy)

	_, err = NewService(NoDiscount{}, nil)
	require.ErrorIs(t, err, ErrNilPolicy)
}

func TestService_Price(t *testing.T) {
	loyalty5, err := NewLoyaltyPercentDiscount(5)
	require.NoError(t, err)

	svc, err := NewService(loyalty5, taxAt(t, 10))
	require.NoError(t, err)

	res := svc.Price(money.MustParse("7.80"))

	assert.Equal(t, "7.80", res.Subtotal.String())
	assert.Equal(t, "0.39", res.Discount.String())
	assert.Equal(t, "0.74", res.Tax.String())
	assert.Equal(t, "8.15", res.Total.String())
}

func TestService_Price_NoDiscount(t *testing.T) {
	svc, err := NewService(NoDiscount{}, taxAt(t, 10))
	require.NoError(t, err)

	res := svc.Price(money.MustParse("2.50"))

	assert.True(t, res.Discount.IsZero())
	assert.Equal(t, "0.25", res.Tax.String())
	assert.Equal(t, "2.75", res.Total.String())
}

func TestService_Price_Idempotent(t *testing.T) {
	coupon := NewFixedCouponDiscount(money.MustParse("1.00"))
	svc, err := NewService(coupon, taxAt(t, 10))
	require.NoError(t, err)

	subtotal := money.MustParse("7.80")
	first := svc.Price(subtotal)
	second := svc.Price(subtotal)
	assert.Equal(t, first, second)
}

// overDiscount deliberately breaks the cap contract to exercise the pipeline's
// defensive floor.
type overDiscount struct{}

func (overDiscount) DiscountOf(subtotal money.Money) money.Money {
	return subtotal.Add(money.MustParse("5.00"))
}

func TestService_Price_ClampsNegativeDiscounted(t *testing.T) {
	svc, err := NewService(overDiscount{}, taxAt(t, 10))
	require.NoError(t, err)

	res := svc.Price(money.MustParse("10.00"))

	assert.Equal(t, "10.00", res.Subtotal.String())
	assert.Equal(t, "15.00", res.Discount.String())
	assert.True(t, res.Tax.IsZero())
	assert.True(t, res.Total.IsZero())
}

func TestService_Price_CouponCappedAtSubtotal(t *testing.T) {
	coupon := NewFixedCouponDiscount(money.MustParse("15.00"))
	svc, err := NewService(coupon, taxAt(t, 10))
	require.NoError(t, err)

	res := svc.Price(money.MustParse("10.00"))

	assert.Equal(t, "10.00", res.Discount.String())
	assert.True(t, res.Total.IsZero())
}
