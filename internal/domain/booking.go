package domain

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// Booking is a reservation of one room for one customer over a contiguous
// date range. Records are never deleted; cancelled and completed bookings
// are kept for history and filtered out of the availability picture.
type Booking struct {
	ID              string
	RoomID          string
	CustomerID      string
	Range           DateRange
	Guests          int
	TotalCents      int64
	Status          BookingStatus
	SpecialRequests *string
	CreatedAt       time.Time
}

// Active reports whether the booking still holds its date range.
func (b *Booking) Active() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// Confirm moves a freshly created booking out of PENDING. There is no
// payment gate in this service, so confirmation follows creation directly.
func (b *Booking) Confirm() error {
	if b.Status != StatusPending {
		return fmt.Errorf("%w: cannot confirm a %s booking", ErrInvalidTransition, b.Status)
	}
	b.Status = StatusConfirmed
	return nil
}

// Cancel is allowed only for CONFIRMED bookings whose check-in is still
// strictly in the future; a stay in progress or already over stays put.
// CANCELLED is terminal.
func (b *Booking) Cancel(now time.Time) error {
	if b.Status != StatusConfirmed {
		return fmt.Errorf("%w: cannot cancel a %s booking", ErrInvalidTransition, b.Status)
	}
	if !b.Range.CheckIn.After(Day(now)) {
		return fmt.Errorf("%w: stay has already started", ErrInvalidTransition)
	}
	b.Status = StatusCancelled
	return nil
}

// Complete flips a CONFIRMED booking whose checkout date has passed.
// Driven by the background sweep, not by a user-facing mutation.
func (b *Booking) Complete(now time.Time) error {
	if b.Status != StatusConfirmed {
		return fmt.Errorf("%w: cannot complete a %s booking", ErrInvalidTransition, b.Status)
	}
	if Day(now).Before(b.Range.CheckOut) {
		return fmt.Errorf("%w: stay has not ended yet", ErrInvalidTransition)
	}
	b.Status = StatusCompleted
	return nil
}
