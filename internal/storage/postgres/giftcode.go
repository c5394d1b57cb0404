package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/cafepos/internal/domain/giftcode"
	"github.com/xenking/cafepos/internal/domain/money"
)

const (
	getGiftCodeSQL = `SELECT code, amount, description
	FROM gift_codes WHERE UPPER(code) = UPPER($1) AND active = TRUE`

	incrementRedemptionsSQL = `UPDATE gift_codes SET redemptions = redemptions + 1 WHERE code = $1`

	upsertGiftCodeSQL = `INSERT INTO gift_codes (code, amount, description)
	VALUES ($1, $2, $3)
	ON CONFLICT (code) DO UPDATE SET amount = EXCLUDED.amount, description = EXCLUDED.description, active = TRUE`
)

var _ giftcode.Repository = (*GiftCodeRepository)(nil)

// GiftCodeRepository implements giftcode.Repository backed by PostgreSQL.
type GiftCodeRepository struct {
	pool *pgxpool.Pool
}

// NewGiftCodeRepository returns a GiftCodeRepository that uses the given pool.
func NewGiftCodeRepository(pool *pgxpool.Pool) *GiftCodeRepository {
	return &GiftCodeRepository{pool: pool}
}

// FindByCode looks up an active gift code (case-insensitive). Returns
// giftcode.ErrUnknownCode when no matching active code exists.
func (r *GiftCodeRepository) FindByCode(ctx context.Context, code string) (*giftcode.Code, error) {
	var (
		c      giftcode.Code
		amount decimal.Decimal
	)
	err := r.pool.QueryRow(ctx, getGiftCodeSQL, code).Scan(&c.Code, &amount, &c.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, giftcode.ErrUnknownCode
		}
		return nil, fmt.Errorf("finding gift code %q: %w", code, err)
	}

	if c.Amount, err = money.New(amount); err != nil {
		return nil, fmt.Errorf("reading amount for gift code %q: %w", code, err)
	}
	return &c, nil
}

// IncrementRedemptions atomically bumps the redemption counter for the code.
func (r *GiftCodeRepository) IncrementRedemptions(ctx context.Context, code string) error {
	_, err := r.pool.Exec(ctx, incrementRedemptionsSQL, code)
	if err != nil {
		return fmt.Errorf("incrementing redemptions for gift code %q: %w", code, err)
	}
	return nil
}

// Upsert inserts or refreshes a gift code, reactivating it if needed. Used by
// the seed and ingest commands.
func (r *GiftCodeRepository) Upsert(ctx context.Context, c giftcode.Code) error {
	_, err := r.pool.Exec(ctx, upsertGiftCodeSQL, c.Code, c.Amount.Decimal(), c.Description)
	if err != nil {
		return fmt.Errorf("upserting gift code %q: %w", c.Code, err)
	}
	return nil
}
