package utils

import (
	"context"
	"log"
	"runtime/debug"

	"stock-news-watcher/pkg/logger"
)

// GoSafe runs fn in a goroutine and recovers from panics so a single
// misbehaving task cannot take the process down.
func GoSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("recovered from panic: %v\n%s", r, debug.Stack())
			}
		}()
		fn()
	}()
}

// ShouldContinue reports whether the context is still alive. Loops over
// tickers or batches call this between iterations so cancellation stops
// work at the next safe point.
func ShouldContinue(ctx context.Context, log *logger.Logger) bool {
	select {
	case <-ctx.Done():
		log.Warn("Context cancelled, stopping early", logger.ErrorField(ctx.Err()))
		return false
	default:
		return true
	}
}
