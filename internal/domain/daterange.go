package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar dates (no time component).
const DateLayout = "2006-01-02"

// DateRange is a half-open stay interval [CheckIn, CheckOut): the checkout
// day itself is free for the next guest's check-in.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// NewDateRange normalizes both endpoints to UTC midnight and rejects ranges
// where checkout is not strictly after check-in.
func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: Day(checkIn), CheckOut: Day(checkOut)}
	if !dr.CheckOut.After(dr.CheckIn) {
		return DateRange{}, fmt.Errorf("%w: check-out must be after check-in", ErrValidation)
	}
	return dr, nil
}

// Day truncates a timestamp to its UTC calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (dr DateRange) Nights() int {
	return int(dr.CheckOut.Sub(dr.CheckIn) / (24 * time.Hour))
}

// Overlaps reports whether two half-open ranges share at least one night.
// [a,b) and [c,d) overlap iff a < d && c < b.
func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

func (dr DateRange) String() string {
	return dr.CheckIn.Format(DateLayout) + "/" + dr.CheckOut.Format(DateLayout)
}
