package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/cafepos/internal/domain/money"
	"github.com/xenking/cafepos/internal/domain/order"
	"github.com/xenking/cafepos/internal/domain/pricing"
)

const (
	createOrderSQL = `INSERT INTO orders (id, items, status, subtotal, discount, tax, total, gift_code, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	getOrderByIDSQL = `SELECT items, status, subtotal, discount, tax, total, gift_code, created_at
	FROM orders WHERE id = $1`

	updateOrderStatusSQL = `UPDATE orders SET status = $2 WHERE id = $1`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order. The line items are serialized to JSON for
// storage in the JSONB column.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	itemsJSON, err := json.Marshal(o.Items())
	if err != nil {
		return fmt.Errorf("marshaling order items: %w", err)
	}

	res, ok := o.Pricing()
	if !ok {
		subtotal := o.Subtotal()
		res = pricing.Result{
			Subtotal: subtotal,
			Discount: money.Zero(),
			Tax:      money.Zero(),
			Total:    subtotal,
		}
	}

	_, err = r.pool.Exec(ctx, createOrderSQL,
		o.ID(), itemsJSON, string(o.Status()),
		res.Subtotal.Decimal(), res.Discount.Decimal(), res.Tax.Decimal(), res.Total.Decimal(),
		o.GiftCode(), o.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("creating order %q: %w", o.ID(), err)
	}

	return nil
}

// GetByID fetches and rehydrates an order. Returns order.ErrNotFound when no
// row matches.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	var (
		itemsJSON []byte
		status    string
		subtotal  decimal.Decimal
		discount  decimal.Decimal
		tax       decimal.Decimal
		total     decimal.Decimal
		giftCode  string
		createdAt time.Time
	)
	err := r.pool.QueryRow(ctx, getOrderByIDSQL, id).Scan(
		&itemsJSON, &status, &subtotal, &discount, &tax, &total, &giftCode, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("finding order %q: %w", id, err)
	}

	var items []order.LineItem
	if err := json.Unmarshal(itemsJSON, &items); err != nil {
		return nil, fmt.Errorf("unmarshaling order items for %q: %w", id, err)
	}

	res, err := scanResult(subtotal, discount, tax, total)
	if err != nil {
		return nil, fmt.Errorf("reading pricing for order %q: %w", id, err)
	}

	return order.Restore(id, items, order.Status(status), &res, giftCode, createdAt), nil
}

// UpdateStatus changes the status of an existing order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	tag, err := r.pool.Exec(ctx, updateOrderStatusSQL, id, string(status))
	if err != nil {
		return fmt.Errorf("updating status for order %q: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func scanResult(subtotal, discount, tax, total decimal.Decimal) (pricing.Result, error) {
	var (
		res pricing.Result
		err error
	)
	if res.Subtotal, err = money.New(subtotal); err != nil {
		return res, err
	}
	if res.Discount, err = money.New(discount); err != nil {
		return res, err
	}
	if res.Tax, err = money.New(tax); err != nil {
		return res, err
	}
	res.Total, err = money.New(total)
	return res, err
}
