// Package memory provides map-backed repositories used when no database is
// configured, and by tests. Reads return rehydrated copies, mirroring how the
// postgres repositories behave.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/xenking/cafepos/internal/domain/order"
	"github.com/xenking/cafepos/internal/domain/pricing"
)

var _ order.Repository = (*OrderRepository)(nil)

// orderRecord is the stored snapshot of an order.
type orderRecord struct {
	items     []order.LineItem
	status    order.Status
	priced    *pricing.Result
	giftCode  string
	createdAt time.Time
}

// OrderRepository is an in-memory order.Repository.
type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]orderRecord
}

// NewOrderRepository creates an empty in-memory order store.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[string]orderRecord)}
}

// Create stores a snapshot of the order.
func (r *OrderRepository) Create(_ context.Context, o *order.Order) error {
	rec := orderRecord{
		items:     o.Items(),
		status:    o.Status(),
		giftCode:  o.GiftCode(),
		createdAt: o.CreatedAt(),
	}
	if res, ok := o.Pricing(); ok {
		rec.priced = &res
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID()] = rec
	return nil
}

// GetByID rehydrates a stored order. Returns order.ErrNotFound when absent.
func (r *OrderRepository) GetByID(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	rec, ok := r.orders[id]
	r.mu.RUnlock()
	if !ok {
		return nil, order.ErrNotFound
	}

	items := make([]order.LineItem, len(rec.items))
	copy(items, rec.items)

	var priced *pricing.Result
	if rec.priced != nil {
		res := *rec.priced
		priced = &res
	}

	return order.Restore(id, items, rec.status, priced, rec.giftCode, rec.createdAt), nil
}

// UpdateStatus changes the stored status of an existing order.
func (r *OrderRepository) UpdateStatus(_ context.Context, id string, status order.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.orders[id]
	if !ok {
		return order.ErrNotFound
	}
	rec.status = status
	r.orders[id] = rec
	return nil
}
