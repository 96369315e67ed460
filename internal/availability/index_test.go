package availability_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"staybook/internal/availability"
	"staybook/internal/domain"
)

func dr(t *testing.T, in, out string) domain.DateRange {
	t.Helper()
	ci, err := time.Parse(domain.DateLayout, in)
	if err != nil {
		t.Fatalf("parse %s: %v", in, err)
	}
	co, err := time.Parse(domain.DateLayout, out)
	if err != nil {
		t.Fatalf("parse %s: %v", out, err)
	}
	r, err := domain.NewDateRange(ci, co)
	if err != nil {
		t.Fatalf("range %s/%s: %v", in, out, err)
	}
	return r
}

func TestIndex_ReserveConflict(t *testing.T) {
	ix := availability.New()
	ctx := context.Background()

	if err := ix.Reserve(ctx, "r1", dr(t, "2025-06-01", "2025-06-04"), "b1"); err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	err := ix.Reserve(ctx, "r1", dr(t, "2025-06-03", "2025-06-05"), "b2")
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	// back-to-back stay: checkout day == next check-in day is allowed
	if err := ix.Reserve(ctx, "r1", dr(t, "2025-06-04", "2025-06-06"), "b3"); err != nil {
		t.Fatalf("adjacent reserve: %v", err)
	}
	// other rooms are independent
	if err := ix.Reserve(ctx, "r2", dr(t, "2025-06-01", "2025-06-04"), "b4"); err != nil {
		t.Fatalf("other room: %v", err)
	}
}

func TestIndex_ReleaseIsIdempotent(t *testing.T) {
	ix := availability.New()
	ctx := context.Background()
	r := dr(t, "2025-06-01", "2025-06-04")

	if err := ix.Reserve(ctx, "r1", r, "b1"); err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if err := ix.Release(ctx, "r1", "b1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := ix.Release(ctx, "r1", "b1"); err != nil {
		t.Fatalf("second release must be a no-op, got %v", err)
	}
	if err := ix.Release(ctx, "r9", "nope"); err != nil {
		t.Fatalf("release on unknown room: %v", err)
	}
	// range is free again
	if err := ix.Reserve(ctx, "r1", r, "b2"); err != nil {
		t.Fatalf("re-reserve after release: %v", err)
	}
}

func TestIndex_ReleaseIgnoresCancelledContext(t *testing.T) {
	ix := availability.New()
	r := dr(t, "2025-06-01", "2025-06-04")

	if err := ix.Reserve(context.Background(), "r1", r, "b1"); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	// a dead request context must not strand the hold: callers release after
	// the status transition has already been persisted
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := ix.Release(ctx, "r1", "b1"); err != nil {
		t.Fatalf("release with cancelled context: %v", err)
	}
	if err := ix.Reserve(context.Background(), "r1", r, "b2"); err != nil {
		t.Fatalf("range still held after release: %v", err)
	}
}

func TestIndex_ConcurrentReserve_ExactlyOneWins(t *testing.T) {
	ix := availability.New()
	ctx := context.Background()
	r := dr(t, "2025-06-01", "2025-06-04")

	const n = 32
	var ok, conflict int64
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			err := ix.Reserve(ctx, "r1", r, fmt.Sprintf("b%d", i))
			switch {
			case err == nil:
				atomic.AddInt64(&ok, 1)
			case errors.Is(err, domain.ErrConflict):
				atomic.AddInt64(&conflict, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	if ok != 1 || conflict != n-1 {
		t.Fatalf("want exactly one success, got ok=%d conflict=%d", ok, conflict)
	}
	if got := ix.Holds("r1"); got != 1 {
		t.Fatalf("expected a single hold, got %d", got)
	}
}

func TestIndex_Rebuild(t *testing.T) {
	ix := availability.New()
	ctx := context.Background()

	ix.Rebuild([]domain.RoomHold{
		{RoomID: "r1", BookingID: "b1", Range: dr(t, "2025-06-01", "2025-06-04")},
		{RoomID: "r2", BookingID: "b2", Range: dr(t, "2025-07-01", "2025-07-03")},
	})

	if err := ix.Reserve(ctx, "r1", dr(t, "2025-06-02", "2025-06-03"), "bx"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("rebuilt hold not enforced: %v", err)
	}
	if err := ix.Reserve(ctx, "r2", dr(t, "2025-07-03", "2025-07-05"), "by"); err != nil {
		t.Fatalf("free range after rebuild: %v", err)
	}
}
