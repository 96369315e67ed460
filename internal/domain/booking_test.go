package domain_test

import (
	"errors"
	"testing"
	"time"

	"staybook/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, in, out time.Time) domain.DateRange {
	t.Helper()
	dr, err := domain.NewDateRange(in, out)
	if err != nil {
		t.Fatalf("NewDateRange: %v", err)
	}
	return dr
}

func TestNewDateRange_RejectsBadOrder(t *testing.T) {
	cases := []struct{ in, out time.Time }{
		{date(2025, 6, 4), date(2025, 6, 1)}, // reversed
		{date(2025, 6, 1), date(2025, 6, 1)}, // zero nights
	}
	for _, c := range cases {
		if _, err := domain.NewDateRange(c.in, c.out); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("range %v→%v: expected ErrValidation, got %v", c.in, c.out, err)
		}
	}
}

func TestDateRange_Nights(t *testing.T) {
	if n := mustRange(t, date(2025, 6, 1), date(2025, 6, 4)).Nights(); n != 3 {
		t.Fatalf("expected 3 nights, got %d", n)
	}
	if n := mustRange(t, date(2025, 6, 1), date(2025, 6, 2)).Nights(); n != 1 {
		t.Fatalf("expected 1 night, got %d", n)
	}
}

func TestDateRange_Overlaps_HalfOpen(t *testing.T) {
	base := mustRange(t, date(2025, 6, 1), date(2025, 6, 4))

	cases := []struct {
		name string
		r    domain.DateRange
		want bool
	}{
		{"same range", base, true},
		{"overlap on last night", mustRange(t, date(2025, 6, 3), date(2025, 6, 5)), true},
		{"contained", mustRange(t, date(2025, 6, 2), date(2025, 6, 3)), true},
		{"checkout day equals next check-in", mustRange(t, date(2025, 6, 4), date(2025, 6, 6)), false},
		{"ends on check-in day", mustRange(t, date(2025, 5, 28), date(2025, 6, 1)), false},
		{"fully before", mustRange(t, date(2025, 5, 1), date(2025, 5, 10)), false},
	}
	for _, c := range cases {
		if got := base.Overlaps(c.r); got != c.want {
			t.Errorf("%s: Overlaps=%v, want %v", c.name, got, c.want)
		}
		if got := c.r.Overlaps(base); got != c.want {
			t.Errorf("%s (flipped): Overlaps=%v, want %v", c.name, got, c.want)
		}
	}
}

func newBooking(t *testing.T) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		ID:         "b-1",
		RoomID:     "r-1",
		CustomerID: "c-1",
		Range:      mustRange(t, date(2025, 6, 1), date(2025, 6, 4)),
		Guests:     2,
		TotalCents: 45000,
		Status:     domain.StatusPending,
		CreatedAt:  date(2025, 5, 1),
	}
}

func TestBooking_ConfirmThenCancel(t *testing.T) {
	b := newBooking(t)
	if err := b.Confirm(); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if b.Status != domain.StatusConfirmed {
		t.Fatalf("status: %s", b.Status)
	}
	// cancel the day before check-in is fine
	if err := b.Cancel(date(2025, 5, 31)); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if b.Status != domain.StatusCancelled {
		t.Fatalf("status: %s", b.Status)
	}
	if b.Active() {
		t.Fatal("cancelled booking must not be active")
	}
}

func TestBooking_CancelRejectedOnOrAfterCheckIn(t *testing.T) {
	for _, now := range []time.Time{date(2025, 6, 1), date(2025, 6, 2), date(2025, 6, 10)} {
		b := newBooking(t)
		_ = b.Confirm()
		if err := b.Cancel(now); !errors.Is(err, domain.ErrInvalidTransition) {
			t.Fatalf("cancel at %v: expected ErrInvalidTransition, got %v", now, err)
		}
		if b.Status != domain.StatusConfirmed {
			t.Fatalf("failed cancel must not change status, got %s", b.Status)
		}
	}
}

func TestBooking_TerminalStatesStayTerminal(t *testing.T) {
	b := newBooking(t)
	_ = b.Confirm()
	_ = b.Cancel(date(2025, 5, 1))

	if err := b.Cancel(date(2025, 5, 1)); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("double cancel: %v", err)
	}
	if err := b.Confirm(); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("confirm after cancel: %v", err)
	}
	if err := b.Complete(date(2025, 7, 1)); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("complete after cancel: %v", err)
	}
}

func TestBooking_Complete(t *testing.T) {
	b := newBooking(t)
	_ = b.Confirm()

	if err := b.Complete(date(2025, 6, 3)); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("complete mid-stay: %v", err)
	}
	if err := b.Complete(date(2025, 6, 4)); err != nil {
		t.Fatalf("complete on checkout day: %v", err)
	}
	if b.Status != domain.StatusCompleted {
		t.Fatalf("status: %s", b.Status)
	}
	if err := b.Cancel(date(2025, 5, 1)); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("cancel after complete: %v", err)
	}
}
