package catalog

import (
	"github.com/go-faster/errors"

	"github.com/xenking/cafepos/internal/domain/money"
)

// ErrNilProduct is returned when a decorator is constructed without an inner
// product.
var ErrNilProduct = errors.New("inner product required")

// addon wraps an inner product with a fixed price delta and a name suffix.
// Deltas commute, so Price is independent of wrapping order; Name is not:
// suffixes accumulate in application order.
type addon struct {
	inner  Product
	delta  money.Money
	suffix string
}

func (a addon) ID() string             { return a.inner.ID() }
func (a addon) BasePrice() money.Money { return a.inner.BasePrice() }
func (a addon) Name() string           { return a.inner.Name() + a.suffix }
func (a addon) Price() money.Money     { return a.inner.Price().Add(a.delta) }

func wrap(inner Product, delta money.Money, suffix string) (Product, error) {
	if inner == nil {
		return nil, ErrNilProduct
	}
	return addon{inner: inner, delta: delta, suffix: suffix}, nil
}

var (
	extraShotDelta = money.MustParse("0.80")
	oatMilkDelta   = money.MustParse("0.50")
	syrupDelta     = money.MustParse("0.40")
	sizeLargeDelta = money.MustParse("0.70")
)

// NewExtraShot adds an extra espresso shot: +0.80, " + Extra Shot".
func NewExtraShot(inner Product) (Product, error) {
	return wrap(inner, extraShotDelta, " + Extra Shot")
}

// NewOatMilk swaps in oat milk: +0.50, " + Oat Milk".
func NewOatMilk(inner Product) (Product, error) {
	return wrap(inner, oatMilkDelta, " + Oat Milk")
}

// NewSyrup adds flavour syrup: +0.40, " + Syrup".
func NewSyrup(inner Product) (Product, error) {
	return wrap(inner, syrupDelta, " + Syrup")
}

// NewSizeLarge upsizes the drink: +0.70, " (Large)".
func NewSizeLarge(inner Product) (Product, error) {
	return wrap(inner, sizeLargeDelta, " (Large)")
}
