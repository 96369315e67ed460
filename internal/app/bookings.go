package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"staybook/internal/domain"
)

// BookingService orchestrates the booking lifecycle: it validates requests,
// reserves the date range, prices the stay, persists the record and
// publishes lifecycle events. It is the only writer of booking state.
type BookingService struct {
	repo    domain.BookingRepository
	catalog domain.CatalogRepository
	avail   domain.AvailabilityIndex
	events  domain.EventPublisher // nil when messaging is disabled

	now   func() time.Time
	newID func() string
}

func NewBookingService(repo domain.BookingRepository, catalog domain.CatalogRepository, avail domain.AvailabilityIndex, events domain.EventPublisher) *BookingService {
	return &BookingService{
		repo:    repo,
		catalog: catalog,
		avail:   avail,
		events:  events,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// WithClock fixes the service's notion of "now"; used by tests and the sweep.
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// WithIDGenerator overrides booking identifier minting; used by tests.
func (s *BookingService) WithIDGenerator(newID func() string) *BookingService {
	s.newID = newID
	return s
}

type CreateBookingInput struct {
	RoomID          string
	CustomerID      string
	CheckIn         time.Time
	CheckOut        time.Time
	Guests          int
	SpecialRequests *string
}

// CreateBooking validates the request, atomically reserves the range, prices
// the stay and persists a CONFIRMED booking. On a persist failure the
// reservation is released, so no partial state survives.
func (s *BookingService) CreateBooking(ctx context.Context, in CreateBookingInput) (*domain.Booking, error) {
	dr, err := domain.NewDateRange(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if dr.CheckIn.Before(domain.Day(now)) {
		return nil, fmt.Errorf("%w: check-in date is in the past", domain.ErrValidation)
	}
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: customer id is required", domain.ErrValidation)
	}

	room, err := s.catalog.GetRoom(ctx, in.RoomID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: room %s", domain.ErrNotFound, in.RoomID)
		}
		return nil, err
	}
	if _, err := s.catalog.GetCustomer(ctx, in.CustomerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s", domain.ErrNotFound, in.CustomerID)
		}
		return nil, err
	}
	if in.Guests < 1 || in.Guests > room.Capacity {
		return nil, fmt.Errorf("%w: guests must be between 1 and %d", domain.ErrValidation, room.Capacity)
	}

	id := s.newID()
	if err := s.avail.Reserve(ctx, room.ID, dr, id); err != nil {
		return nil, err
	}

	total, err := Quote(room, dr)
	if err != nil {
		_ = s.avail.Release(ctx, room.ID, id)
		return nil, err
	}

	b := &domain.Booking{
		ID:              id,
		RoomID:          room.ID,
		CustomerID:      in.CustomerID,
		Range:           dr,
		Guests:          in.Guests,
		TotalCents:      total,
		Status:          domain.StatusPending,
		SpecialRequests: in.SpecialRequests,
		CreatedAt:       now.UTC(),
	}
	// no payment gate in this service: confirmation follows creation
	if err := b.Confirm(); err != nil {
		_ = s.avail.Release(ctx, room.ID, id)
		return nil, err
	}
	if err := s.repo.Insert(ctx, b); err != nil {
		// compensate so the range is claimable again
		_ = s.avail.Release(ctx, room.ID, id)
		return nil, err
	}

	log.Info().Str("booking", b.ID).Str("room", b.RoomID).
		Str("range", dr.String()).Int64("total_cents", total).
		Msg("booking created")
	s.publish(ctx, "booking.created", b)
	return b, nil
}

// CancelBooking moves a CONFIRMED booking with a future check-in to
// CANCELLED and frees its date range. The status update is persisted before
// the release; Release is idempotent, so a retry after a partial failure
// converges on the same state.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := b.Cancel(s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	if err := s.avail.Release(ctx, b.RoomID, b.ID); err != nil {
		log.Warn().Err(err).Str("booking", b.ID).Msg("release after cancel failed")
	}

	log.Info().Str("booking", b.ID).Str("room", b.RoomID).Msg("booking cancelled")
	s.publish(ctx, "booking.cancelled", b)
	return b, nil
}

// CompleteDue flips CONFIRMED bookings whose checkout has passed to
// COMPLETED and drops their (already expired) holds. Returns the number of
// bookings completed.
func (s *BookingService) CompleteDue(ctx context.Context) (int, error) {
	now := s.now()
	due, err := s.repo.ListCompletable(ctx, domain.Day(now))
	if err != nil {
		return 0, err
	}
	n := 0
	for _, b := range due {
		if err := b.Complete(now); err != nil {
			// raced with a concurrent transition; skip
			continue
		}
		if err := s.repo.Update(ctx, b); err != nil {
			log.Warn().Err(err).Str("booking", b.ID).Msg("complete update failed")
			continue
		}
		_ = s.avail.Release(ctx, b.RoomID, b.ID)
		s.publish(ctx, "booking.completed", b)
		n++
	}
	return n, nil
}

func (s *BookingService) publish(ctx context.Context, typ string, b *domain.Booking) {
	if s.events == nil {
		return
	}
	evt := domain.BookingEvent{
		Type:       typ,
		BookingID:  b.ID,
		RoomID:     b.RoomID,
		CustomerID: b.CustomerID,
		Status:     b.Status,
		CheckIn:    b.Range.CheckIn.Format(domain.DateLayout),
		CheckOut:   b.Range.CheckOut.Format(domain.DateLayout),
		At:         s.now().UTC(),
	}
	if err := s.events.Publish(ctx, evt); err != nil {
		log.Warn().Err(err).Str("booking", b.ID).Str("type", typ).Msg("event publish failed")
	}
}
