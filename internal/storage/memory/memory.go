// Package memory provides map-backed repositories for tests and local runs.
// They honor the same port contracts as the MySQL implementations, including
// the no-physical-delete rule for bookings.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"staybook/internal/domain"
)

type BookingRepo struct {
	mu       sync.RWMutex
	bookings map[string]domain.Booking
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{bookings: make(map[string]domain.Booking)}
}

func (r *BookingRepo) Insert(ctx context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; ok {
		return fmt.Errorf("%w: booking id %s already exists", domain.ErrUnavailable, b.ID)
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *BookingRepo) Get(ctx context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: booking %s", domain.ErrNotFound, id)
	}
	return &b, nil
}

func (r *BookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.ID]; !ok {
		return fmt.Errorf("%w: booking %s", domain.ErrNotFound, b.ID)
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *BookingRepo) FindByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			b := b
			out = append(out, &b)
		}
	}
	sortByCheckIn(out)
	return out, nil
}

func (r *BookingRepo) FindUpcoming(ctx context.Context, customerID string, asOf time.Time) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.CustomerID != customerID || !b.Active() {
			continue
		}
		if b.Range.CheckIn.Before(asOf) {
			continue
		}
		b := b
		out = append(out, &b)
	}
	sortByCheckIn(out)
	return out, nil
}

// sortByCheckIn orders by check-in with an ID tie-break, matching the SQL
// store's ORDER BY check_in, id.
func sortByCheckIn(bs []*domain.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		if bs[i].Range.CheckIn.Equal(bs[j].Range.CheckIn) {
			return bs[i].ID < bs[j].ID
		}
		return bs[i].Range.CheckIn.Before(bs[j].Range.CheckIn)
	})
}

func (r *BookingRepo) FindOverlapping(ctx context.Context, roomID string, dr domain.DateRange) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.RoomID != roomID || !b.Active() {
			continue
		}
		if b.Range.Overlaps(dr) {
			b := b
			out = append(out, &b)
		}
	}
	return out, nil
}

func (r *BookingRepo) ListActiveHolds(ctx context.Context) ([]domain.RoomHold, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.RoomHold
	for _, b := range r.bookings {
		if b.Active() {
			out = append(out, domain.RoomHold{RoomID: b.RoomID, BookingID: b.ID, Range: b.Range})
		}
	}
	return out, nil
}

func (r *BookingRepo) ListCompletable(ctx context.Context, asOf time.Time) ([]*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*domain.Booking
	for _, b := range r.bookings {
		if b.Status != domain.StatusConfirmed {
			continue
		}
		if !b.Range.CheckOut.After(asOf) {
			b := b
			out = append(out, &b)
		}
	}
	return out, nil
}

type CatalogRepo struct {
	mu        sync.RWMutex
	hotels    map[string]domain.Hotel
	rooms     map[string]domain.Room
	customers map[string]domain.Customer
}

func NewCatalogRepo() *CatalogRepo {
	return &CatalogRepo{
		hotels:    make(map[string]domain.Hotel),
		rooms:     make(map[string]domain.Room),
		customers: make(map[string]domain.Customer),
	}
}

func (r *CatalogRepo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hotels[h.ID] = h
	return nil
}

func (r *CatalogRepo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms[rm.ID] = rm
	return nil
}

func (r *CatalogRepo) UpsertCustomer(ctx context.Context, c domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[c.ID] = c
	return nil
}

func (r *CatalogRepo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.hotels[id]
	if !ok {
		return domain.Hotel{}, fmt.Errorf("%w: hotel %s", domain.ErrNotFound, id)
	}
	return h, nil
}

func (r *CatalogRepo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Hotel, 0, len(r.hotels))
	for _, h := range r.hotels {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CatalogRepo) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[id]
	if !ok {
		return domain.Room{}, fmt.Errorf("%w: room %s", domain.ErrNotFound, id)
	}
	return rm, nil
}

func (r *CatalogRepo) ListRoomsByHotel(ctx context.Context, hotelID string) ([]domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Room
	for _, rm := range r.rooms {
		if rm.HotelID == hotelID {
			out = append(out, rm)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomNumber < out[j].RoomNumber })
	return out, nil
}

func (r *CatalogRepo) GetCustomer(ctx context.Context, id string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[id]
	if !ok {
		return domain.Customer{}, fmt.Errorf("%w: customer %s", domain.ErrNotFound, id)
	}
	return c, nil
}
