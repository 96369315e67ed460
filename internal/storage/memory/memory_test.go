package memory_test

import (
	"context"
	"testing"
	"time"

	"staybook/internal/domain"
	"staybook/internal/storage/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, in, out time.Time) domain.DateRange {
	t.Helper()
	dr, err := domain.NewDateRange(in, out)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	return dr
}

func seedBooking(t *testing.T, r *memory.BookingRepo, id, roomID string, dr domain.DateRange) {
	t.Helper()
	err := r.Insert(context.Background(), &domain.Booking{
		ID:         id,
		RoomID:     roomID,
		CustomerID: "c1",
		Range:      dr,
		Guests:     1,
		TotalCents: 10000,
		Status:     domain.StatusConfirmed,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("insert %s: %v", id, err)
	}
}

// Equal check-in dates must come back in a stable order, the same one the
// SQL store produces (check-in then ID).
func TestBookingRepo_OrderingWithEqualCheckIn(t *testing.T) {
	repo := memory.NewBookingRepo()
	ctx := context.Background()

	sameDay := mustRange(t, date(2025, time.June, 1), date(2025, time.June, 3))
	seedBooking(t, repo, "b2", "r2", sameDay)
	seedBooking(t, repo, "b3", "r3", mustRange(t, date(2025, time.July, 1), date(2025, time.July, 2)))
	seedBooking(t, repo, "b1", "r1", sameDay)

	byCustomer, err := repo.FindByCustomer(ctx, "c1")
	if err != nil {
		t.Fatalf("FindByCustomer: %v", err)
	}
	wantOrder := []string{"b1", "b2", "b3"}
	for i, want := range wantOrder {
		if byCustomer[i].ID != want {
			t.Fatalf("FindByCustomer[%d] = %s, want %s", i, byCustomer[i].ID, want)
		}
	}

	upcoming, err := repo.FindUpcoming(ctx, "c1", date(2025, time.May, 1))
	if err != nil {
		t.Fatalf("FindUpcoming: %v", err)
	}
	for i, want := range wantOrder {
		if upcoming[i].ID != want {
			t.Fatalf("FindUpcoming[%d] = %s, want %s", i, upcoming[i].ID, want)
		}
	}
}
