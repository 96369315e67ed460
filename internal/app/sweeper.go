package app

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RunCompletionSweep periodically moves CONFIRMED bookings past their
// checkout date to COMPLETED. Runs until ctx is cancelled. Each pass goes
// through the lifecycle manager, so it takes the same per-room locks as live
// traffic and nothing more.
func RunCompletionSweep(ctx context.Context, svc *BookingService, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := svc.CompleteDue(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("completion sweep failed")
				continue
			}
			if n > 0 {
				log.Info().Int("completed", n).Msg("completion sweep")
			}
		}
	}
}
