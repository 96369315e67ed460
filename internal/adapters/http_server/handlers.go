package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"staybook/internal/adapters/observability"
	"staybook/internal/app"
	"staybook/internal/domain"
)

type Handlers struct {
	Q *app.QueryService
	B *app.BookingService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/hotels", h.listHotels)
	s.mux.Get("/v1/hotels/{id}", h.getHotel)
	s.mux.Get("/v1/hotels/{id}/rooms", h.roomsByHotel)
	s.mux.Get("/v1/hotels/{id}/availability", h.availableRooms)
	s.mux.Get("/v1/rooms/{id}", h.getRoom)
	s.mux.Get("/v1/bookings/{id}", h.getBooking)
	s.mux.Post("/v1/bookings", h.createBooking)
	s.mux.Post("/v1/bookings/{id}/cancel", h.cancelBooking)
	s.mux.Get("/v1/customers/{id}/bookings", h.bookingsByCustomer)
	s.mux.Get("/v1/customers/{id}/bookings/upcoming", h.upcomingBookings)
}

// ---- wire DTOs (field names match the UI's GraphQL contract) ----

type hotelDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
	StarRating  int    `json:"starRating"`
}

type roomDTO struct {
	ID            string  `json:"id"`
	HotelID       string  `json:"hotelId"`
	RoomNumber    string  `json:"roomNumber"`
	RoomType      string  `json:"roomType"`
	PricePerNight float64 `json:"pricePerNight"`
	Capacity      int     `json:"capacity"`
	Description   string  `json:"description"`
}

type bookingDTO struct {
	ID              string  `json:"id"`
	RoomID          string  `json:"roomId"`
	CustomerID      string  `json:"customerId"`
	CheckInDate     string  `json:"checkInDate"`
	CheckOutDate    string  `json:"checkOutDate"`
	NumberOfGuests  int     `json:"numberOfGuests"`
	TotalPrice      float64 `json:"totalPrice"`
	Status          string  `json:"status"`
	SpecialRequests *string `json:"specialRequests"`
	CreatedAt       string  `json:"createdAt"`
}

func toHotelDTO(h domain.Hotel) hotelDTO {
	return hotelDTO{
		ID: h.ID, Name: h.Name, Address: h.Address, City: h.City, State: h.State,
		ZipCode: h.ZipCode, Country: h.Country, Phone: h.Phone,
		Description: h.Description, StarRating: h.StarRating,
	}
}

func toRoomDTO(r domain.Room) roomDTO {
	return roomDTO{
		ID: r.ID, HotelID: r.HotelID, RoomNumber: r.RoomNumber,
		RoomType: string(r.RoomType), PricePerNight: float64(r.PriceCents) / 100,
		Capacity: r.Capacity, Description: r.Description,
	}
}

func toBookingDTO(b *domain.Booking) bookingDTO {
	return bookingDTO{
		ID:              b.ID,
		RoomID:          b.RoomID,
		CustomerID:      b.CustomerID,
		CheckInDate:     b.Range.CheckIn.Format(domain.DateLayout),
		CheckOutDate:    b.Range.CheckOut.Format(domain.DateLayout),
		NumberOfGuests:  b.Guests,
		TotalPrice:      float64(b.TotalCents) / 100,
		Status:          string(b.Status),
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// ---- error mapping ----

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write problem response failed")
	}
}

// writeError maps the domain failure taxonomy onto distinct statuses so the
// UI can render a specific message per failure kind.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeProblem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeProblem(w, http.StatusConflict, "Dates Unavailable", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		writeProblem(w, http.StatusUnprocessableEntity, "Invalid Transition", err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		writeProblem(w, http.StatusServiceUnavailable, "Storage Unavailable", "please retry")
	default:
		log.Error().Err(err).Msg("unhandled error")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// ---- read handlers ----

func (h *Handlers) listHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.Q.Hotels(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]hotelDTO, 0, len(hotels))
	for _, hot := range hotels {
		out = append(out, toHotelDTO(hot))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	hot, err := h.Q.Hotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toHotelDTO(hot))
}

func (h *Handlers) roomsByHotel(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.Q.RoomsByHotel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]roomDTO, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, toRoomDTO(rm))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) availableRooms(w http.ResponseWriter, r *http.Request) {
	checkIn, err := parseDate(r.URL.Query().Get("checkIn"))
	if err != nil {
		writeError(w, err)
		return
	}
	checkOut, err := parseDate(r.URL.Query().Get("checkOut"))
	if err != nil {
		writeError(w, err)
		return
	}
	rooms, err := h.Q.AvailableRooms(r.Context(), chi.URLParam(r, "id"), checkIn, checkOut)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]roomDTO, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, toRoomDTO(rm))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	rm, err := h.Q.Room(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRoomDTO(rm))
}

func (h *Handlers) getBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.Q.Booking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTO(b))
}

func (h *Handlers) bookingsByCustomer(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Q.BookingsByCustomer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTOs(bs))
}

func (h *Handlers) upcomingBookings(w http.ResponseWriter, r *http.Request) {
	bs, err := h.Q.UpcomingBookings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingDTOs(bs))
}

func toBookingDTOs(bs []*domain.Booking) []bookingDTO {
	out := make([]bookingDTO, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBookingDTO(b))
	}
	return out
}

// ---- mutation handlers ----

type createBookingRequest struct {
	RoomID          string  `json:"roomId"`
	CustomerID      string  `json:"customerId"`
	CheckInDate     string  `json:"checkInDate"`
	CheckOutDate    string  `json:"checkOutDate"`
	NumberOfGuests  int     `json:"numberOfGuests"`
	SpecialRequests *string `json:"specialRequests"`
}

func (h *Handlers) createBooking(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Validation Failed", "malformed JSON body")
		return
	}
	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		writeError(w, err)
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		writeError(w, err)
		return
	}

	b, err := h.B.CreateBooking(r.Context(), app.CreateBookingInput{
		RoomID:          req.RoomID,
		CustomerID:      req.CustomerID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		Guests:          req.NumberOfGuests,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			observability.ObserveBooking("conflict")
		}
		writeError(w, err)
		return
	}
	observability.ObserveBooking("created")
	writeJSON(w, http.StatusCreated, toBookingDTO(b))
}

func (h *Handlers) cancelBooking(w http.ResponseWriter, r *http.Request) {
	b, err := h.B.CancelBooking(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	observability.ObserveBooking("cancelled")
	writeJSON(w, http.StatusOK, toBookingDTO(b))
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: dates must be YYYY-MM-DD", domain.ErrValidation)
	}
	return t, nil
}
