package queue

import (
	"context"
	"fmt"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
)

// ImportanceQueue dispatches items to one of three buffered channels based on
// notification importance.
//
// Buffer sizes reflect expected traffic ratios:
//
//	High:    500  — task deadlines and chat; must never accumulate
//	Default: 2000 — the bulk of household updates
//	Low:     1000 — weekly reports and other best-effort nudges
//
// Workers dequeue via the double-select pattern, which guarantees that
// high-importance items are always served before default or low ones, while
// still allowing fair competition between default and low when high is empty.
type ImportanceQueue struct {
	high chan Item
	def  chan Item
	low  chan Item
}

func New() *ImportanceQueue {
	return &ImportanceQueue{
		high: make(chan Item, 500),
		def:  make(chan Item, 2000),
		low:  make(chan Item, 1000),
	}
}

// Enqueue places an item on the appropriate importance channel.
// It is non-blocking: if the target channel is full, ErrQueueFull is returned
// immediately rather than blocking the caller (the HTTP handler).
func (q *ImportanceQueue) Enqueue(item Item) error {
	switch item.Importance {
	case domain.ImportanceHigh:
		select {
		case q.high <- item:
			return nil
		default:
			return domain.ErrQueueFull
		}
	case domain.ImportanceDefault:
		select {
		case q.def <- item:
			return nil
		default:
			return domain.ErrQueueFull
		}
	case domain.ImportanceLow:
		select {
		case q.low <- item:
			return nil
		default:
			return domain.ErrQueueFull
		}
	default:
		return fmt.Errorf("unknown importance %q", item.Importance)
	}
}

// Dequeue blocks until an item is available or ctx is cancelled.
//
// The double-select pattern: a non-blocking select drains the high channel
// first; only when high is empty does the goroutine enter a fair blocking
// select across all three channels plus the done signal. High-importance
// reminders never starve, and idle workers sleep instead of spinning.
//
// Returns (Item{}, false) when ctx is cancelled (graceful shutdown signal).
func (q *ImportanceQueue) Dequeue(ctx context.Context) (Item, bool) {
	select {
	case item := <-q.high:
		return item, true
	default:
	}

	select {
	case item := <-q.high:
		return item, true
	case item := <-q.def:
		return item, true
	case item := <-q.low:
		return item, true
	case <-ctx.Done():
		return Item{}, false
	}
}

// Depths returns the current number of items waiting in each importance tier.
// Used by the metrics handler for the queue-depth snapshot.
func (q *ImportanceQueue) Depths() (high, def, low int) {
	return len(q.high), len(q.def), len(q.low)
}
