package queue_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/domain"
	"github.com/Samuel-J-Mathew/chorewarsOfficial/internal/queue"
)

func item(id string, imp domain.Importance) queue.Item {
	return queue.Item{ReminderID: id, Category: domain.CategoryTask, Importance: imp}
}

func TestImportanceQueue_BasicEnqueueDequeue(t *testing.T) {
	q := queue.New()
	ctx := context.Background()

	if err := q.Enqueue(item("1", domain.ImportanceDefault)); err != nil {
		t.Fatal(err)
	}

	got, ok := q.Dequeue(ctx)
	if !ok {
		t.Fatal("expected item, got nothing")
	}
	if got.ReminderID != "1" {
		t.Fatalf("expected id=1, got %s", got.ReminderID)
	}
}

// TestImportanceQueue_HighBeforeDefault verifies that a high-importance item
// inserted after a default-importance item is still served first.
func TestImportanceQueue_HighBeforeDefault(t *testing.T) {
	q := queue.New()
	ctx := context.Background()

	_ = q.Enqueue(item("default", domain.ImportanceDefault))
	_ = q.Enqueue(item("high", domain.ImportanceHigh))

	first, _ := q.Dequeue(ctx)
	if first.ReminderID != "high" {
		t.Fatalf("expected high to be dequeued first, got %q", first.ReminderID)
	}
}

func TestImportanceQueue_UnknownImportance(t *testing.T) {
	q := queue.New()
	if err := q.Enqueue(item("x", "critical")); err == nil {
		t.Fatal("expected error for unknown importance")
	}
}

// TestImportanceQueue_ContextCancellation verifies Dequeue returns (_, false)
// when the context is cancelled while blocking.
func TestImportanceQueue_ContextCancellation(t *testing.T) {
	q := queue.New()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan bool, 1)
	go func() {
		_, ok := q.Dequeue(ctx)
		done <- ok
	}()

	cancel()

	select {
	case ok := <-done:
		if ok {
			t.Fatal("expected ok=false after context cancellation")
		}
	case <-time.After(time.Second):
		t.Fatal("Dequeue did not return after context cancellation")
	}
}

// TestImportanceQueue_ConcurrentEnqueueDequeue verifies there are no races
// when multiple goroutines enqueue and dequeue simultaneously.
func TestImportanceQueue_ConcurrentEnqueueDequeue(t *testing.T) {
	q := queue.New()

	const producers = 5
	const itemsPerProducer = 100
	const total = producers * itemsPerProducer

	received := make(chan struct{}, total)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var consumerDone sync.WaitGroup
	consumerDone.Add(1)
	go func() {
		defer consumerDone.Done()
		for {
			_, ok := q.Dequeue(ctx)
			if !ok {
				return
			}
			received <- struct{}{}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < itemsPerProducer; j++ {
				_ = q.Enqueue(item("id", domain.ImportanceDefault))
			}
		}()
	}
	wg.Wait()

	for i := 0; i < total; i++ {
		select {
		case <-received:
		case <-ctx.Done():
			t.Fatalf("timeout: only received %d/%d items", i, total)
		}
	}
	cancel()
	consumerDone.Wait()
}

func TestImportanceQueue_Depths(t *testing.T) {
	q := queue.New()

	_ = q.Enqueue(item("h", domain.ImportanceHigh))
	_ = q.Enqueue(item("d1", domain.ImportanceDefault))
	_ = q.Enqueue(item("d2", domain.ImportanceDefault))
	_ = q.Enqueue(item("l", domain.ImportanceLow))

	high, def, low := q.Depths()
	if high != 1 || def != 2 || low != 1 {
		t.Fatalf("unexpected depths: high=%d default=%d low=%d", high, def, low)
	}
}
