package app

import (
	"context"
	"fmt"
	"time"

	"staybook/internal/domain"
)

// QueryService serves the read-side projections. Catalog reads go through
// the cache (catalog data is owned by a collaborator and changes rarely);
// booking state is never cached — callers always see fresh state.
type QueryService struct {
	catalog  domain.CatalogRepository
	bookings domain.BookingRepository
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewQueryService(catalog domain.CatalogRepository, bookings domain.BookingRepository, cache domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{catalog: catalog, bookings: bookings, cache: cache, cacheTTL: ttl, now: time.Now}
}

// WithClock fixes the service's notion of "now"; used by tests.
func (s *QueryService) WithClock(now func() time.Time) *QueryService {
	s.now = now
	return s
}

// A nil cache disables caching; reads fall through to the catalog.
func (s *QueryService) cacheGet(ctx context.Context, key string, dst any) bool {
	if s.cache == nil {
		return false
	}
	ok, _ := s.cache.Get(ctx, key, dst)
	return ok
}

func (s *QueryService) cacheSet(ctx context.Context, key string, v any) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds()))
}

func (s *QueryService) Hotels(ctx context.Context) ([]domain.Hotel, error) {
	const key = "hotels:all"
	var out []domain.Hotel
	if s.cacheGet(ctx, key, &out) {
		return out, nil
	}
	out, err := s.catalog.ListHotels(ctx)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, out)
	return out, nil
}

func (s *QueryService) Hotel(ctx context.Context, id string) (domain.Hotel, error) {
	key := "hotel:" + id
	var h domain.Hotel
	if s.cacheGet(ctx, key, &h) {
		return h, nil
	}
	h, err := s.catalog.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	s.cacheSet(ctx, key, h)
	return h, nil
}

func (s *QueryService) RoomsByHotel(ctx context.Context, hotelID string) ([]domain.Room, error) {
	// surface NotFound for an unknown hotel rather than an empty list
	if _, err := s.Hotel(ctx, hotelID); err != nil {
		return nil, err
	}
	key := "rooms:" + hotelID
	var out []domain.Room
	if s.cacheGet(ctx, key, &out) {
		return out, nil
	}
	out, err := s.catalog.ListRoomsByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	s.cacheSet(ctx, key, out)
	return out, nil
}

func (s *QueryService) Room(ctx context.Context, id string) (domain.Room, error) {
	return s.catalog.GetRoom(ctx, id)
}

// AvailableRooms lists the hotel's rooms with no active booking overlapping
// the range. Never cached: availability must reflect live booking state.
func (s *QueryService) AvailableRooms(ctx context.Context, hotelID string, checkIn, checkOut time.Time) ([]domain.Room, error) {
	dr, err := domain.NewDateRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}
	rooms, err := s.RoomsByHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}
	free := make([]domain.Room, 0, len(rooms))
	for _, room := range rooms {
		overlapping, err := s.bookings.FindOverlapping(ctx, room.ID, dr)
		if err != nil {
			return nil, err
		}
		if len(overlapping) == 0 {
			free = append(free, room)
		}
	}
	return free, nil
}

func (s *QueryService) Booking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.bookings.Get(ctx, id)
}

func (s *QueryService) BookingsByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer id is required", domain.ErrValidation)
	}
	return s.bookings.FindByCustomer(ctx, customerID)
}

// UpcomingBookings returns the customer's PENDING/CONFIRMED bookings with a
// check-in from today onward, ascending by check-in date.
func (s *QueryService) UpcomingBookings(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer id is required", domain.ErrValidation)
	}
	return s.bookings.FindUpcoming(ctx, customerID, domain.Day(s.now()))
}
