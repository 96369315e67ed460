package domain

import (
	"context"
	"time"
)

// RoomHold is one date range held against a room by an active booking.
type RoomHold struct {
	RoomID    string
	BookingID string
	Range     DateRange
}

type BookingRepository interface {
	// Insert fails if the identifier already exists; identifiers are never reused.
	Insert(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id string) (*Booking, error)
	// Update replaces the stored record; used for status transitions only.
	Update(ctx context.Context, b *Booking) error
	FindByCustomer(ctx context.Context, customerID string) ([]*Booking, error)
	// FindUpcoming returns PENDING/CONFIRMED bookings with check-in on or
	// after asOf, ordered by check-in ascending.
	FindUpcoming(ctx context.Context, customerID string, asOf time.Time) ([]*Booking, error)
	// FindOverlapping returns active bookings on the room whose range
	// overlaps r (half-open semantics).
	FindOverlapping(ctx context.Context, roomID string, r DateRange) ([]*Booking, error)
	// ListActiveHolds feeds the availability index rebuild at startup.
	ListActiveHolds(ctx context.Context) ([]RoomHold, error)
	// ListCompletable returns CONFIRMED bookings whose checkout is on or
	// before asOf; consumed by the completion sweep.
	ListCompletable(ctx context.Context, asOf time.Time) ([]*Booking, error)
}

type CatalogRepository interface {
	// Write paths (ingest only)
	UpsertHotel(ctx context.Context, h Hotel) error
	UpsertRoom(ctx context.Context, r Room) error
	UpsertCustomer(ctx context.Context, c Customer) error

	// Read paths
	GetHotel(ctx context.Context, id string) (Hotel, error)
	ListHotels(ctx context.Context) ([]Hotel, error)
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRoomsByHotel(ctx context.Context, hotelID string) ([]Room, error)
	GetCustomer(ctx context.Context, id string) (Customer, error)
}

// AvailabilityIndex answers "is the room free for this range" with an atomic
// check-and-reserve. Release is idempotent so cancellation retries converge.
type AvailabilityIndex interface {
	Reserve(ctx context.Context, roomID string, r DateRange, bookingID string) error
	Release(ctx context.Context, roomID, bookingID string) error
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// BookingEvent is the lifecycle notification published for downstream
// consumers (notifications, analytics). Best-effort; the booking itself is
// the source of truth.
type BookingEvent struct {
	Type       string        `json:"type"` // booking.created|booking.cancelled|booking.completed
	BookingID  string        `json:"bookingId"`
	RoomID     string        `json:"roomId"`
	CustomerID string        `json:"customerId"`
	Status     BookingStatus `json:"status"`
	CheckIn    string        `json:"checkInDate"`
	CheckOut   string        `json:"checkOutDate"`
	At         time.Time     `json:"at"`
}

type EventPublisher interface {
	Publish(ctx context.Context, evt BookingEvent) error
}

// CatalogClient pulls raw catalog payloads from the collaborator's feed.
type CatalogClient interface {
	ListHotels(ctx context.Context) ([]map[string]any, error)
	ListRooms(ctx context.Context, hotelID string) ([]map[string]any, error)
	ListCustomers(ctx context.Context) ([]map[string]any, error)
}
