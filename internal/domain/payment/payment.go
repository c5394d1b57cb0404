// Package payment provides the payment strategies accepted at the register.
// Strategies only capture the payment; lifecycle changes stay on the order.
package payment

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/cafepos/internal/domain/money"
)

var (
	// ErrCardNumberRequired is returned when a card payment has no PAN.
	ErrCardNumberRequired = errors.New("card number required")
	// ErrWalletIDRequired is returned when a wallet payment has no wallet id.
	ErrWalletIDRequired = errors.New("wallet id required")
)

// Strategy captures a payment for a given total.
type Strategy interface {
	Name() string
	Pay(ctx context.Context, total money.Money) error
}

// CardPayment pays by card. The PAN is never logged in full.
type CardPayment struct {
	number string
}

// NewCardPayment creates a card payment strategy.
func NewCardPayment(number string) (*CardPayment, error) {
	if number == "" {
		return nil, ErrCardNumberRequired
	}
	return &CardPayment{number: number}, nil
}

func (p *CardPayment) Name() string { return "card" }

func (p *CardPayment) Pay(ctx context.Context, total money.Money) error {
	zctx.From(ctx).Info("card payment captured",
		zap.String("card", maskPAN(p.number)),
		zap.String("total", total.String()),
	)
	return nil
}

// maskPAN keeps only the last four digits.
func maskPAN(number string) string {
	if len(number) <= 4 {
		return number
	}
	return "****" + number[len(number)-4:]
}

// CashPayment pays in cash at the counter.
type CashPayment struct{}

// NewCashPayment creates a cash payment strategy.
func NewCashPayment() *CashPayment { return &CashPayment{} }

func (p *CashPayment) Name() string { return "cash" }

func (p *CashPayment) Pay(ctx context.Context, total money.Money) error {
	zctx.From(ctx).Info("cash payment received",
		zap.String("total", total.String()),
	)
	return nil
}

// WalletPayment pays through a customer wallet account.
type WalletPayment struct {
	walletID string
}

// NewWalletPayment creates a wallet payment strategy.
func NewWalletPayment(walletID string) (*WalletPayment, error) {
	if walletID == "" {
		return nil, ErrWalletIDRequired
	}
	return &WalletPayment{walletID: walletID}, nil
}

func (p *WalletPayment) Name() string { return "wallet" }

func (p *WalletPayment) Pay(ctx context.Context, total money.Money) error {
	zctx.From(ctx).Info("wallet payment captured",
		zap.String("wallet_id", p.walletID),
		zap.String("total", total.String()),
	)
	return nil
}
