// Package order holds the order aggregate: line items priced at add time, a
// lifecycle state machine, observer fan-out, and the persistence boundary.
package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/cafepos/internal/domain/catalog"
	"github.com/xenking/cafepos/internal/domain/money"
	"github.com/xenking/cafepos/internal/domain/pricing"
)

var (
	// ErrNotFound is returned when a requested order does not exist.
	ErrNotFound = errors.New("order not found")
	// ErrNilProduct is returned when a line item is built without a product.
	ErrNilProduct = errors.New("product required")
	// ErrInvalidQuantity is returned for non-positive line item quantities.
	ErrInvalidQuantity = errors.New("quantity must be greater than 0")
)

// LineItem is a priced snapshot of a product at the moment it was added.
// Snapshotting keeps stored orders stable if the catalog changes later, and
// makes the item trivially serializable.
type LineItem struct {
	Recipe    string      `json:"recipe"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	UnitPrice money.Money `json:"unit_price"`
}

// NewLineItem snapshots the product's decorated name and price.
func NewLineItem(p catalog.Product, recipe string, qty int) (LineItem, error) {
	if p == nil {
		return LineItem{}, ErrNilProduct
	}
	if qty <= 0 {
		return LineItem{}, ErrInvalidQuantity
	}
	return LineItem{
		Recipe:    recipe,
		Name:      p.Name(),
		Quantity:  qty,
		UnitPrice: p.Price(),
	}, nil
}

// LineTotal returns unit price times quantity. Quantity is validated positive
// at construction, so multiplication cannot fail.
func (li LineItem) LineTotal() money.Money {
	total, err := li.UnitPrice.MulInt(li.Quantity)
	if err != nil {
		return money.Zero()
	}
	return total
}

// Order is the aggregate root. All mutation goes through methods so that
// lifecycle invariants hold and observers are notified.
type Order struct {
	id        string
	items     []LineItem
	status    Status
	priced    *pricing.Result
	giftCode  string
	createdAt time.Time
	observers []Observer
}

// New creates an empty order in StatusNew.
func New(id string) *Order {
	return &Order{
		id:        id,
		status:    StatusNew,
		createdAt: time.Now().UTC(),
	}
}

// Restore rebuilds an order from persisted state. Observers are not restored;
// callers re-register them as needed.
func Restore(id string, items []LineItem, status Status, priced *pricing.Result, giftCode string, createdAt time.Time) *Order {
	return &Order{
		id:        id,
		items:     items,
		status:    status,
		priced:    priced,
		giftCode:  giftCode,
		createdAt: createdAt,
	}
}

func (o *Order) ID() string           { return o.id }
func (o *Order) Status() Status       { return o.status }
func (o *Order) GiftCode() string     { return o.giftCode }
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// Items returns a copy of the line items.
func (o *Order) Items() []LineItem {
	out := make([]LineItem, len(o.items))
	copy(out, o.items)
	return out
}

// Pricing returns the attached pricing result, if the order has been priced.
func (o *Order) Pricing() (pricing.Result, bool) {
	if o.priced == nil {
		return pricing.Result{}, false
	}
	return *o.priced, true
}

// AddItem appends a line item and notifies observers.
func (o *Order) AddItem(li LineItem) {
	o.items = append(o.items, li)
	o.notify(EventItemAdded)
}

// RemoveLastItem removes the most recently added item. It reports whether an
// item was removed.
func (o *Order) RemoveLastItem() bool {
	if len(o.items) == 0 {
		return false
	}
	o.items = o.items[:len(o.items)-1]
	return true
}

// Subtotal is the sum of all line totals.
func (o *Order) Subtotal() money.Money {
	sum := money.Zero()
	for _, li := range o.items {
		sum = sum.Add(li.LineTotal())
	}
	return sum
}

// AttachPricing records the pricing pipeline output on the order.
func (o *Order) AttachPricing(res pricing.Result, giftCode string) {
	o.priced = &res
	o.giftCode = giftCode
}

// Register adds an observer. Registering the same observer twice is a no-op.
func (o *Order) Register(obs Observer) {
	for _, existing := range o.observers {
		if existing == obs {
			return
		}
	}
	o.observers = append(o.observers, obs)
}

// Unregister removes an observer.
func (o *Order) Unregister(obs Observer) {
	for i, existing := range o.observers {
		if existing == obs {
			o.observers = append(o.observers[:i], o.observers[i+1:]...)
			return
		}
	}
}

func (o *Order) notify(event Event) {
	for _, obs := range o.observers {
		obs.OrderUpdated(o, event)
	}
}

// Pay moves the order from new to preparing.
func (o *Order) Pay() error {
	return o.transition(StatusPreparing, EventPaid)
}

// MarkReady moves the order from preparing to ready.
func (o *Order) MarkReady() error {
	return o.transition(StatusReady, EventReady)
}

// Deliver moves the order from ready to delivered.
func (o *Order) Deliver() error {
	return o.transition(StatusDelivered, EventDelivered)
}

// Cancel aborts a new or preparing order.
func (o *Order) Cancel() error {
	return o.transition(StatusCancelled, EventCancelled)
}

func (o *Order) transition(target Status, event Event) error {
	if !o.status.CanTransition(target) {
		return &InvalidTransitionError{From: o.status, To: target}
	}
	o.status = target
	o.notify(event)
	return nil
}

// Repository is the persistence boundary for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
}
