package domain

// Catalog entities are owned by the catalog collaborator and ingested
// read-only; this service never mutates them outside the ingest path.

type Hotel struct {
	ID          string
	Name        string
	Address     string
	City        string
	State       string
	ZipCode     string
	Country     string
	Phone       string
	Description string
	StarRating  int
}

type RoomType string

const (
	RoomStandard RoomType = "STANDARD"
	RoomDeluxe   RoomType = "DELUXE"
	RoomSuite    RoomType = "SUITE"
)

type Room struct {
	ID          string
	HotelID     string
	RoomNumber  string
	RoomType    RoomType
	PriceCents  int64 // per night, minor units
	Capacity    int
	Description string
}

type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
}
