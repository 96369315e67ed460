package app

import (
	"fmt"

	"staybook/internal/domain"
)

// Quote computes the total stay price in minor units:
// pricePerNight × nights over the half-open range. No proration, discounts
// or taxes. Deterministic and side-effect free.
func Quote(room domain.Room, dr domain.DateRange) (int64, error) {
	nights := dr.Nights()
	if nights < 1 {
		return 0, fmt.Errorf("%w: stay must cover at least one night", domain.ErrValidation)
	}
	return room.PriceCents * int64(nights), nil
}
