package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a per-minute token budget on top of a plain
// request limiter. Callers report how many tokens a request will consume
// and Wait blocks until the current window has room for them.
type TokenLimiter struct {
	mu        sync.Mutex
	maxTokens int
	remaining int
	windowEnd time.Time
}

// NewTokenLimiter creates a limiter allowing maxTokensPerMinute tokens in
// any one-minute window.
func NewTokenLimiter(maxTokensPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		maxTokens: maxTokensPerMinute,
		remaining: maxTokensPerMinute,
		windowEnd: time.Now().Add(time.Minute),
	}
}

// Wait blocks until tokens can be consumed or the context is cancelled.
// A request larger than the whole budget is allowed through on a fresh
// window instead of blocking forever.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	for {
		l.mu.Lock()
		now := time.Now()
		if now.After(l.windowEnd) {
			l.remaining = l.maxTokens
			l.windowEnd = now.Add(time.Minute)
		}
		if tokens <= l.remaining || (tokens >= l.maxTokens && l.remaining == l.maxTokens) {
			l.remaining -= tokens
			l.mu.Unlock()
			return nil
		}
		wait := time.Until(l.windowEnd)
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// GetRemaining returns the tokens left in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.remaining
}
