// Package mysql is the durable store for bookings and the ingested catalog.
// Dates are persisted as DATE columns at UTC midnight; money as integer
// cents.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"staybook/internal/domain"
)

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// wrap translates driver errors into the domain taxonomy so callers can
// errors.Is against sentinels instead of driver types.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, op)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrUnavailable, op, err)
}

// ---------- bookings ----------

func (r *Repo) Insert(ctx context.Context, b *domain.Booking) error {
	_, err := r.db.ExecContext(ctx, insertBookingSQL,
		b.ID,
		b.RoomID,
		b.CustomerID,
		b.Range.CheckIn,
		b.Range.CheckOut,
		b.Guests,
		b.TotalCents,
		string(b.Status),
		valStr(b.SpecialRequests),
		b.CreatedAt,
	)
	return wrap("insert booking", err)
}

func (r *Repo) Update(ctx context.Context, b *domain.Booking) error {
	res, err := r.db.ExecContext(ctx, updateBookingSQL, string(b.Status), b.ID)
	if err != nil {
		return wrap("update booking", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: booking %s", domain.ErrNotFound, b.ID)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, getBookingSQL, id))
	if err != nil {
		return nil, wrap("get booking", err)
	}
	return b, nil
}

func (r *Repo) FindByCustomer(ctx context.Context, customerID string) ([]*domain.Booking, error) {
	return r.queryBookings(ctx, "find by customer", findByCustomerSQL, customerID)
}

func (r *Repo) FindUpcoming(ctx context.Context, customerID string, asOf time.Time) ([]*domain.Booking, error) {
	return r.queryBookings(ctx, "find upcoming", findUpcomingSQL, customerID, domain.Day(asOf))
}

func (r *Repo) FindOverlapping(ctx context.Context, roomID string, dr domain.DateRange) ([]*domain.Booking, error) {
	return r.queryBookings(ctx, "find overlapping", findOverlappingSQL, roomID, dr.CheckOut, dr.CheckIn)
}

func (r *Repo) ListCompletable(ctx context.Context, asOf time.Time) ([]*domain.Booking, error) {
	return r.queryBookings(ctx, "list completable", listCompletableSQL, domain.Day(asOf))
}

func (r *Repo) ListActiveHolds(ctx context.Context) ([]domain.RoomHold, error) {
	rows, err := r.db.QueryContext(ctx, listActiveHoldsSQL)
	if err != nil {
		return nil, wrap("list active holds", err)
	}
	defer rows.Close()

	var out []domain.RoomHold
	for rows.Next() {
		var h domain.RoomHold
		var in, outDate time.Time
		if err := rows.Scan(&h.BookingID, &h.RoomID, &in, &outDate); err != nil {
			return nil, wrap("scan hold", err)
		}
		h.Range = domain.DateRange{CheckIn: domain.Day(in), CheckOut: domain.Day(outDate)}
		out = append(out, h)
	}
	return out, wrap("list active holds", rows.Err())
}

func (r *Repo) queryBookings(ctx context.Context, op, q string, args ...any) ([]*domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	var out []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, wrap(op, err)
		}
		out = append(out, b)
	}
	return out, wrap(op, rows.Err())
}

type rowScanner interface{ Scan(dest ...any) error }

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var in, out time.Time
	var status string
	var special sql.NullString
	err := row.Scan(
		&b.ID,
		&b.RoomID,
		&b.CustomerID,
		&in,
		&out,
		&b.Guests,
		&b.TotalCents,
		&status,
		&special,
		&b.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Range = domain.DateRange{CheckIn: domain.Day(in), CheckOut: domain.Day(out)}
	b.Status = domain.BookingStatus(status)
	if special.Valid {
		s := special.String
		b.SpecialRequests = &s
	}
	return &b, nil
}

// ---------- catalog ----------

func (r *Repo) UpsertHotel(ctx context.Context, h domain.Hotel) error {
	_, err := r.db.ExecContext(ctx, upsertHotelSQL,
		h.ID, h.Name, h.Address, h.City, h.State, h.ZipCode,
		h.Country, h.Phone, h.Description, h.StarRating,
	)
	return wrap("upsert hotel", err)
}

func (r *Repo) UpsertRoom(ctx context.Context, rm domain.Room) error {
	_, err := r.db.ExecContext(ctx, upsertRoomSQL,
		rm.ID, rm.HotelID, rm.RoomNumber, string(rm.RoomType),
		rm.PriceCents, rm.Capacity, rm.Description,
	)
	return wrap("upsert room", err)
}

func (r *Repo) UpsertCustomer(ctx context.Context, c domain.Customer) error {
	_, err := r.db.ExecContext(ctx, upsertCustomerSQL,
		c.ID, c.FirstName, c.LastName, c.Email,
	)
	return wrap("upsert customer", err)
}

func (r *Repo) GetHotel(ctx context.Context, id string) (domain.Hotel, error) {
	var h domain.Hotel
	err := r.db.QueryRowContext(ctx, getHotelSQL, id).Scan(
		&h.ID, &h.Name, &h.Address, &h.City, &h.State, &h.ZipCode,
		&h.Country, &h.Phone, &h.Description, &h.StarRating,
	)
	return h, wrap("get hotel", err)
}

func (r *Repo) ListHotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, listHotelsSQL)
	if err != nil {
		return nil, wrap("list hotels", err)
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		var h domain.Hotel
		if err := rows.Scan(
			&h.ID, &h.Name, &h.Address, &h.City, &h.State, &h.ZipCode,
			&h.Country, &h.Phone, &h.Description, &h.StarRating,
		); err != nil {
			return nil, wrap("scan hotel", err)
		}
		out = append(out, h)
	}
	return out, wrap("list hotels", rows.Err())
}

func (r *Repo) GetRoom(ctx context.Context, id string) (domain.Room, error) {
	var rm domain.Room
	var typ string
	err := r.db.QueryRowContext(ctx, getRoomSQL, id).Scan(
		&rm.ID, &rm.HotelID, &rm.RoomNumber, &typ,
		&rm.PriceCents, &rm.Capacity, &rm.Description,
	)
	rm.RoomType = domain.RoomType(typ)
	return rm, wrap("get room", err)
}

func (r *Repo) ListRoomsByHotel(ctx context.Context, hotelID string) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, listRoomsByHotelSQL, hotelID)
	if err != nil {
		return nil, wrap("list rooms", err)
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		var rm domain.Room
		var typ string
		if err := rows.Scan(
			&rm.ID, &rm.HotelID, &rm.RoomNumber, &typ,
			&rm.PriceCents, &rm.Capacity, &rm.Description,
		); err != nil {
			return nil, wrap("scan room", err)
		}
		rm.RoomType = domain.RoomType(typ)
		out = append(out, rm)
	}
	return out, wrap("list rooms", rows.Err())
}

func (r *Repo) GetCustomer(ctx context.Context, id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.QueryRowContext(ctx, getCustomerSQL, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email,
	)
	return c, wrap("get customer", err)
}
