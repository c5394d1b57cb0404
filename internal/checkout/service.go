// Package checkout orchestrates order placement: recipe parsing, pricing,
// persistence, receipt rendering, and the payment/lifecycle operations.
package checkout

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/xenking/cafepos/internal/domain/catalog"
	"github.com/xenking/cafepos/internal/domain/giftcode"
	"github.com/xenking/cafepos/internal/domain/money"
	"github.com/xenking/cafepos/internal/domain/order"
	"github.com/xenking/cafepos/internal/domain/payment"
	"github.com/xenking/cafepos/internal/domain/pricing"
)

var (
	// ErrEmptyItems is returned when an order is placed without items.
	ErrEmptyItems = errors.New("items required")
	// ErrConflictingDiscounts is returned when both a gift code and a
	// loyalty percentage are requested on the same order.
	ErrConflictingDiscounts = errors.New("gift code and loyalty discount are mutually exclusive")
	// ErrNilStrategy is returned when paying without a payment strategy.
	ErrNilStrategy = errors.New("payment strategy required")
)

// InvalidQuantityError indicates a line item with a non-positive quantity.
type InvalidQuantityError struct {
	Recipe string
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for recipe %q", e.Recipe)
}

// GiftCodeResolver resolves a gift code into a discount policy.
type GiftCodeResolver interface {
	Resolve(ctx context.Context, code string) (pricing.DiscountPolicy, error)
}

// ItemRequest is one requested line: a recipe and a quantity.
type ItemRequest struct {
	Recipe   string
	Quantity int
}

// PlaceOrderRequest holds the input for placing an order. At most one of
// GiftCode and LoyaltyPercent may be set.
type PlaceOrderRequest struct {
	Items          []ItemRequest
	LoyaltyPercent int
	GiftCode       string
}

// PlaceOrderResult is the outcome of a successfully placed order.
type PlaceOrderResult struct {
	Order   *order.Order
	Pricing pricing.Result
	Receipt string
}

// Service wires the pricing core to orders, gift codes and storage.
type Service struct {
	factory   *catalog.Factory
	orders    order.Repository
	codes     GiftCodeResolver
	tax       *pricing.FixedRateTaxPolicy
	observers []order.Observer
}

// NewService creates a checkout service. The gift code resolver may be nil,
// in which case orders carrying a gift code are rejected as unknown.
func NewService(
	factory *catalog.Factory,
	orders order.Repository,
	codes GiftCodeResolver,
	taxPercent int,
	observers ...order.Observer,
) (*Service, error) {
	if factory == nil {
		return nil, errors.New("factory required")
	}
	if orders == nil {
		return nil, errors.New("order repository required")
	}

	tax, err := pricing.NewFixedRateTaxPolicy(taxPercent)
	if err != nil {
		return nil, errors.Wrap(err, "tax policy")
	}

	return &Service{
		factory:   factory,
		orders:    orders,
		codes:     codes,
		tax:       tax,
		observers: observers,
	}, nil
}

// TaxPercent returns the flat tax rate applied to every order.
func (s *Service) TaxPercent() int {
	return s.tax.Percent()
}

// PlaceOrder parses every recipe, builds and prices the order, persists it,
// and renders its receipt. Any invalid input fails the whole order; nothing
// partial is stored.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	discount, err := s.resolveDiscount(ctx, req)
	if err != nil {
		return nil, err
	}

	o := order.New(uuid.New().String())
	for _, obs := range s.observers {
		o.Register(obs)
	}

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{Recipe: item.Recipe}
		}

		p, err := s.factory.Create(item.Recipe)
		if err != nil {
			return nil, err
		}

		li, err := order.NewLineItem(p, item.Recipe, item.Quantity)
		if err != nil {
			return nil, err
		}
		o.AddItem(li)
	}

	pipeline, err := pricing.NewService(discount, s.tax)
	if err != nil {
		return nil, errors.Wrap(err, "pricing pipeline")
	}

	res := pipeline.Price(o.Subtotal())
	o.AttachPricing(res, req.GiftCode)

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	return &PlaceOrderResult{
		Order:   o,
		Pricing: res,
		Receipt: s.Receipt(o),
	}, nil
}

// resolveDiscount picks the discount policy for the request. Gift code and
// loyalty percentage are mutually exclusive; with neither, no discount.
func (s *Service) resolveDiscount(ctx context.Context, req PlaceOrderRequest) (pricing.DiscountPolicy, error) {
	switch {
	case req.GiftCode != "" && req.LoyaltyPercent != 0:
		return nil, ErrConflictingDiscounts
	case req.GiftCode != "":
		if s.codes == nil {
			return nil, giftcode.ErrUnknownCode
		}
		return s.codes.Resolve(ctx, req.GiftCode)
	case req.LoyaltyPercent != 0:
		return pricing.NewLoyaltyPercentDiscount(req.LoyaltyPercent)
	default:
		return pricing.NoDiscount{}, nil
	}
}

// GetOrder fetches an order by id.
func (s *Service) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Receipt renders the itemized receipt for a priced order. Unpriced orders
// render with a zero pricing block.
func (s *Service) Receipt(o *order.Order) string {
	lines := make([]pricing.ReceiptLine, 0, len(o.Items()))
	for _, li := range o.Items() {
		lines = append(lines, pricing.ReceiptLine{
			Name:     li.Name,
			Quantity: li.Quantity,
			Total:    li.LineTotal(),
		})
	}

	res, ok := o.Pricing()
	if !ok {
		res = pricing.Result{
			Subtotal: o.Subtotal(),
			Discount: money.Zero(),
			Tax:      money.Zero(),
			Total:    o.Subtotal(),
		}
	}

	return pricing.FormatItemized(o.ID(), lines, res, s.tax.Percent())
}

// PayOrder captures payment with the given strategy and moves the order to
// preparing. The payment amount is the priced total.
func (s *Service) PayOrder(ctx context.Context, id string, strategy payment.Strategy) (*order.Order, error) {
	if strategy == nil {
		return nil, ErrNilStrategy
	}

	o, err := s.loadForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := o.Pay(); err != nil {
		return nil, err
	}

	total := o.Subtotal()
	if res, ok := o.Pricing(); ok {
		total = res.Total
	}
	if err := strategy.Pay(ctx, total); err != nil {
		return nil, errors.Wrap(err, "capture payment")
	}

	if err := s.orders.UpdateStatus(ctx, id, o.Status()); err != nil {
		return nil, errors.Wrap(err, "update status")
	}
	return o, nil
}

// MarkReady moves a preparing order to ready.
func (s *Service) MarkReady(ctx context.Context, id string) (*order.Order, error) {
	return s.advance(ctx, id, (*order.Order).MarkReady)
}

// Deliver moves a ready order to delivered.
func (s *Service) Deliver(ctx context.Context, id string) (*order.Order, error) {
	return s.advance(ctx, id, (*order.Order).Deliver)
}

// Cancel aborts a new or preparing order.
func (s *Service) Cancel(ctx context.Context, id string) (*order.Order, error) {
	return s.advance(ctx, id, (*order.Order).Cancel)
}

func (s *Service) advance(ctx context.Context, id string, move func(*order.Order) error) (*order.Order, error) {
	o, err := s.loadForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := move(o); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, id, o.Status()); err != nil {
		return nil, errors.Wrap(err, "update status")
	}
	return o, nil
}

// loadForUpdate fetches an order and re-registers the service observers so
// lifecycle events on restored orders still fan out.
func (s *Service) loadForUpdate(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, obs := range s.observers {
		o.Register(obs)
	}
	return o, nil
}
