// Package giftcode backs fixed-amount coupon discounts with redeemable codes
// loaded into storage by cmd/giftcode-ingest.
package giftcode

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/xenking/cafepos/internal/domain/money"
)

// ErrUnknownCode is returned when a gift code is not found or inactive.
var ErrUnknownCode = errors.New("unknown gift code")

// Code is a redeemable gift code worth a fixed discount amount.
type Code struct {
	Code        string
	Amount      money.Money
	Description string
}

// Repository provides lookup and redemption bookkeeping for gift codes.
type Repository interface {
	FindByCode(ctx context.Context, code string) (*Code, error)
	IncrementRedemptions(ctx context.Context, code string) error
}
