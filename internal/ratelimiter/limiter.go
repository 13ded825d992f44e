package ratelimiter

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
)

// CategoryLimiters holds one token bucket limiter per reminder category.
// Each limiter enforces a steady-state rate (e.g. 50 tokens/sec).
// Burst is set equal to the rate so no extra burst capacity is allowed
// beyond the configured per-second maximum.
type CategoryLimiters struct {
	limiters map[domain.Category]*rate.Limiter
}

// New creates a CategoryLimiters with ratePerSec tokens per second per category.
func New(ratePerSec int) *CategoryLimiters {
	r := rate.Limit(ratePerSec)
	burst := ratePerSec // burst == rate: no "saved up" burst above the limit

	limiters := make(map[domain.Category]*rate.Limiter, 5)
	for _, c := range []domain.Category{
		domain.CategoryTask,
		domain.CategoryShopping,
		domain.CategoryChat,
		domain.CategoryExpense,
		domain.CategoryReport,
	} {
		limiters[c] = rate.NewLimiter(r, burst)
	}
	return &CategoryLimiters{limiters: limiters}
}

// Wait blocks until the category's limiter grants a token.
// Called by each worker immediately before sending to the push gateway.
// Returns a non-nil error only if ctx is cancelled while waiting.
func (cl *CategoryLimiters) Wait(ctx context.Context, c domain.Category) error {
	return cl.limiters[c].Wait(ctx)
}
