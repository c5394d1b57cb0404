package memory

import (
	"context"
	"sync"

	"github.com/xenking/cafepos/internal/domain/giftcode"
)

var _ giftcode.Repository = (*GiftCodeRepository)(nil)

// GiftCodeRepository is an in-memory giftcode.Repository.
type GiftCodeRepository struct {
	mu          sync.RWMutex
	codes       map[string]giftcode.Code
	redemptions map[string]int
}

// NewGiftCodeRepository creates an empty in-memory gift code store.
func NewGiftCodeRepository() *GiftCodeRepository {
	return &GiftCodeRepository{
		codes:       make(map[string]giftcode.Code),
		redemptions: make(map[string]int),
	}
}

// Upsert stores or replaces a gift code.
func (r *GiftCodeRepository) Upsert(_ context.Context, c giftcode.Code) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[c.Code] = c
	return nil
}

// FindByCode returns the stored code or giftcode.ErrUnknownCode.
func (r *GiftCodeRepository) FindByCode(_ context.Context, code string) (*giftcode.Code, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.codes[code]
	if !ok {
		return nil, giftcode.ErrUnknownCode
	}
	return &c, nil
}

// IncrementRedemptions bumps the redemption counter for a known code.
func (r *GiftCodeRepository) IncrementRedemptions(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.codes[code]; !ok {
		return giftcode.ErrUnknownCode
	}
	r.redemptions[code]++
	return nil
}

// Redemptions reports how many times a code has been redeemed.
func (r *GiftCodeRepository) Redemptions(code string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.redemptions[code]
}
