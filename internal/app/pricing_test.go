package app_test

import (
	"errors"
	"testing"
	"time"

	"staybook/internal/app"
	"staybook/internal/domain"
)

func TestQuote(t *testing.T) {
	room := domain.Room{ID: "r1", PriceCents: 10000} // $100/night

	cases := []struct {
		name   string
		nights int
		want   int64
	}{
		{"three nights", 3, 30000},
		{"one night", 1, 10000},
		{"two weeks", 14, 140000},
	}
	for _, c := range cases {
		in := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		dr, err := domain.NewDateRange(in, in.AddDate(0, 0, c.nights))
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		got, err := app.Quote(room, dr)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("%s: got %d, want %d", c.name, got, c.want)
		}
	}
}

func TestQuote_EmptyRange(t *testing.T) {
	// a zero-value range has zero nights; Quote must refuse it even though
	// NewDateRange would never produce one
	_, err := app.Quote(domain.Room{PriceCents: 10000}, domain.DateRange{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
