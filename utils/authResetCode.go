package utils

import (
	"CareConnect/cache"
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
)

const resetCodeExpiry = 15 * time.Minute

// GenerateResetCode generates a random 6-digit reset code.
func GenerateResetCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "000000"
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// ResetCodes stores password reset codes in Redis, scoped by account
// variant so a patient code cannot reset a doctor password.
type ResetCodes struct {
	cache *cache.Cache
}

func NewResetCodes(c *cache.Cache) *ResetCodes {
	return &ResetCodes{cache: c}
}

func (r *ResetCodes) Set(ctx context.Context, variant, email, code string) error {
	return r.cache.Set(ctx, resetCodeKey(variant, email), code, resetCodeExpiry)
}

// Get returns the stored code, or "" when none exists.
func (r *ResetCodes) Get(ctx context.Context, variant, email string) (string, error) {
	code, err := r.cache.Get(ctx, resetCodeKey(variant, email))
	if err == redis.Nil {
		return "", nil
	}
	return code, err
}

// Delete removes the code after a successful reset.
func (r *ResetCodes) Delete(ctx context.Context, variant, email string) error {
	return r.cache.Delete(ctx, resetCodeKey(variant, email))
}

func resetCodeKey(variant, email string) string {
	return fmt.Sprintf("reset_code:%s:%s", variant, email)
}
