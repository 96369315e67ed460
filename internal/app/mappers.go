package app

import (
	"strconv"
	"strings"

	"staybook/internal/domain"
)

// The catalog feed has a fixed shape, but identifiers and numbers arrive as
// whatever the collaborator's serializer produced (string vs number), so the
// accessors below stay flexible about scalar types.

func str(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

func num(m map[string]any, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return 0
}

func mapHotel(p map[string]any) domain.Hotel {
	return domain.Hotel{
		ID:          str(p, "id"),
		Name:        str(p, "name"),
		Address:     str(p, "address"),
		City:        str(p, "city"),
		State:       str(p, "state"),
		ZipCode:     str(p, "zipCode"),
		Country:     str(p, "country"),
		Phone:       str(p, "phone"),
		Description: str(p, "description"),
		StarRating:  int(num(p, "starRating")),
	}
}

func mapRoom(hotelID string, p map[string]any) domain.Room {
	return domain.Room{
		ID:          str(p, "id"),
		HotelID:     hotelID,
		RoomNumber:  str(p, "roomNumber"),
		RoomType:    domain.RoomType(strings.ToUpper(str(p, "roomType"))),
		PriceCents:  int64(num(p, "pricePerNight")*100 + 0.5),
		Capacity:    int(num(p, "capacity")),
		Description: str(p, "description"),
	}
}

func mapCustomer(p map[string]any) domain.Customer {
	return domain.Customer{
		ID:        str(p, "id"),
		FirstName: str(p, "firstName"),
		LastName:  str(p, "lastName"),
		Email:     str(p, "email"),
	}
}
