package checkout

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/cafepos/internal/domain/catalog"
	"github.com/xenking/cafepos/internal/domain/giftcode"
	"github.com/xenking/cafepos/internal/domain/money"
	"github.com/xenking/cafepos/internal/domain/order"
	"github.com/xenking/cafepos/internal/domain/payment"
	"github.com/xenking/cafepos/internal/domain/pricing"
	"github.com/xenking/cafepos/internal/storage/memory"
)

type stubResolver struct {
	policy pricing.DiscountPolicy
	err    error
	code   string
}

func (s *stubResolver) Resolve(_ context.Context, code string) (pricing.DiscountPolicy, error) {
	s.code = code
	return s.policy, s.err
}

func newService(t *testing.T, codes GiftCodeResolver, observers ...order.Observer) *Service {
	t.Helper()
	svc, err := NewService(catalog.NewFactory(), memory.NewOrderRepository(), codes, 10, observers...)
	require.NoError(t, err)
	return svc
}

func TestNewService_Validation(t *testing.T) {
	repo := memory.NewOrderRepository()

	_, err := NewService(nil, repo, nil, 10)
	require.Error(t, err)

	_, err = NewService(catalog.NewFactory(), nil, nil, 10)
	require.Error(t, err)

	_, err = NewService(catalog.NewFactory(), repo, nil, -1)
	require.ErrorIs(t, err, pricing.ErrNegativePercent)
}

func TestPlaceOrder_LoyaltyDiscount(t *testing.T) {
	svc := newService(t, nil)

	// LAT+L is 3.90, twice that is 7.80; 5% off and 10% tax land on
	// round cent values.
	res, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Items:          []ItemRequest{{Recipe: "LAT+L", Quantity: 2}},
		LoyaltyPercent: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, "7.80", res.Pricing.Subtotal.String())
	assert.Equal(t, "0.39", res.Pricing.Discount.String())
	assert.Equal(t, "0.74", res.Pricing.Tax.String())
	assert.Equal(t, "8.15", res.Pricing.Total.String())

	assert.Contains(t, res.Receipt, "Latte (Large) x2")
	assert.Contains(t, res.Receipt, "Discount: -0.39")
	assert.Contains(t, res.Receipt, "Total: 8.15")

	// Persisted and readable back.
	got, err := svc.GetOrder(context.Background(), res.Order.ID())
	require.NoError(t, err)
	assert.Equal(t, order.StatusNew, got.Status())
	priced, ok := got.Pricing()
	require.True(t, ok)
	assert.Equal(t, "8.15", priced.Total.String())
}

func TestPlaceOrder_GiftCode(t *testing.T) {
	resolver := &stubResolver{policy: pricing.NewFixedCouponDiscount(money.MustParse("15.00"))}
	svc := newService(t, resolver)

	res, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Items:    []ItemRequest{{Recipe: "ESP", Quantity: 4}}, // 10.00
		GiftCode: "TENOFF",
	})
	require.NoError(t, err)

	assert.Equal(t, "TENOFF", resolver.code)
	// Capped at the subtotal, never negative downstream.
	assert.Equal(t, "10.00", res.Pricing.Discount.String())
	assert.True(t, res.Pricing.Total.IsZero())
}

func TestPlaceOrder_Validation(t *testing.T) {
	svc := newService(t, &stubResolver{err: giftcode.ErrUnknownCode})
	ctx := context.Background()

	_, err := svc.PlaceOrder(ctx, PlaceOrderRequest{})
	require.ErrorIs(t, err, ErrEmptyItems)

	_, err = svc.PlaceOrder(ctx, PlaceOrderRequest{
		Items: []ItemRequest{{Recipe: "ESP", Quantity: 0}},
	})
	var iqErr *InvalidQuantityError
	require.ErrorAs(t, err, &iqErr)
	assert.Equal(t, "ESP", iqErr.Recipe)

	_, err = svc.PlaceOrder(ctx, PlaceOrderRequest{
		Items: []ItemRequest{{Recipe: "UNKNOWN", Quantity: 1}},
	})
	var baseErr *catalog.UnknownBaseError
	require.ErrorAs(t, err, &baseErr)

	_, err = svc.PlaceOrder(ctx, PlaceOrderRequest{
		Items: []ItemRequest{{Recipe: "ESP+UNKNOWN", Quantity: 1}},
	})
	var addonErr *catalog.UnknownAddonError
	require.ErrorAs(t, err, &addonErr)

	_, err = svc.PlaceOrder(ctx, PlaceOrderRequest{
		Items: []ItemRequest{{Recipe: "", Quantity: 1}},
	})
	require.ErrorIs(t, err, catalog.ErrEmptyRecipe)

	_, err = svc.PlaceOrder(ctx, PlaceOrderRequest{
		Items:          []ItemRequest{{Recipe: "ESP", Quantity: 1}},
		GiftCode:       "TENOFF",
		LoyaltyPercent: 5,
	})
	require.ErrorIs(t, err, ErrConflictingDiscounts)

	_, err = svc.PlaceOrder(ctx, PlaceOrderRequest{
		Items:    []ItemRequest{{Recipe: "ESP", Quantity: 1}},
		GiftCode: "BOGUS",
	})
	require.ErrorIs(t, err, giftcode.ErrUnknownCode)

	_, err = svc.PlaceOrder(ctx, PlaceOrderRequest{
		Items:          []ItemRequest{{Recipe: "ESP", Quantity: 1}},
		LoyaltyPercent: -5,
	})
	require.ErrorIs(t, err, pricing.ErrNegativePercent)
}

func TestPlaceOrder_NoResolverRejectsGiftCodes(t *testing.T) {
	svc := newService(t, nil)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Items:    []ItemRequest{{Recipe: "ESP", Quantity: 1}},
		GiftCode: "TENOFF",
	})
	require.ErrorIs(t, err, giftcode.ErrUnknownCode)
}

type recordingObserver struct {
	events []order.Event
}

func (r *recordingObserver) OrderUpdated(_ *order.Order, event order.Event) {
	r.events = append(r.events, event)
}

func TestPayOrder(t *testing.T) {
	obs := &recordingObserver{}
	svc := newService(t, nil, obs)
	ctx := context.Background()

	placed, err := svc.PlaceOrder(ctx, PlaceOrderRequest{
		Items: []ItemRequest{{Recipe: "ESP", Quantity: 1}},
	})
	require.NoError(t, err)

	paid, err := svc.PayOrder(ctx, placed.Order.ID(), payment.NewCashPayment())
	require.NoError(t, err)
	assert.Equal(t, order.StatusPreparing, paid.Status())

	// Item added during placement, then the payment event.
	assert.Equal(t, []order.Event{order.EventItemAdded, order.EventPaid}, obs.events)

	// Status change persisted.
	got, err := svc.GetOrder(ctx, placed.Order.ID())
	require.NoError(t, err)
	assert.Equal(t, order.StatusPreparing, got.Status())
}

func TestPayOrder_Errors(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	_, err := svc.PayOrder(ctx, "missing", nil)
	require.ErrorIs(t, err, ErrNilStrategy)

	_, err = svc.PayOrder(ctx, "missing", payment.NewCashPayment())
	require.ErrorIs(t, err, order.ErrNotFound)

	placed, err := svc.PlaceOrder(ctx, PlaceOrderRequest{
		Items: []ItemRequest{{Recipe: "ESP", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.PayOrder(ctx, placed.Order.ID(), payment.NewCashPayment())
	require.NoError(t, err)

	// Second pay is an invalid transition.
	_, err = svc.PayOrder(ctx, placed.Order.ID(), payment.NewCashPayment())
	var itErr *order.InvalidTransitionError
	require.ErrorAs(t, err, &itErr)
}

func TestLifecycleOperations(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	placed, err := svc.PlaceOrder(ctx, PlaceOrderRequest{
		Items: []ItemRequest{{Recipe: "CAP", Quantity: 1}},
	})
	require.NoError(t, err)
	id := placed.Order.ID()

	_, err = svc.PayOrder(ctx, id, payment.NewCashPayment())
	require.NoError(t, err)

	ready, err := svc.MarkReady(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, order.StatusReady, ready.Status())

	delivered, err := svc.Deliver(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, order.StatusDelivered, delivered.Status())

	_, err = svc.Cancel(ctx, id)
	require.Error(t, err)
}

func TestReceipt_UnpricedOrder(t *testing.T) {
	svc := newService(t, nil)

	o := order.New("o-1")
	li, err := order.NewLineItem(mustProduct(t, "ESP"), "ESP", 2)
	require.NoError(t, err)
	o.AddItem(li)

	receipt := svc.Receipt(o)
	assert.Contains(t, receipt, "Order #o-1")
	assert.Contains(t, receipt, "Subtotal: 5.00")
	assert.NotContains(t, receipt, "Discount")
	assert.Contains(t, receipt, "Total: 5.00")
}

func mustProduct(t *testing.T, recipe string) catalog.Product {
	t.Helper()
	p, err := catalog.NewFactory().Create(recipe)
	require.NoError(t, err)
	return p
}

func TestPlaceOrder_RepositoryError(t *testing.T) {
	svc, err := NewService(catalog.NewFactory(), failingRepo{}, nil, 10)
	require.NoError(t, err)

	_, err = svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		Items: []ItemRequest{{Recipe: "ESP", Quantity: 1}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order")
}

type failingRepo struct{}

func (failingRepo) Create(context.Context, *order.Order) error {
	return errors.New("db down")
}

func (failingRepo) GetByID(context.Context, string) (*order.Order, error) {
	return nil, order.ErrNotFound
}

func (failingRepo) UpdateStatus(context.Context, string, order.Status) error {
	return errors.New("db down")
}
