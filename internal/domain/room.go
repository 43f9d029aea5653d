package domain

// RoomType groups rooms (lecture hall, meeting room, ...)
type RoomType struct {
	ID          int64
	Name        string
	Description string
}

// Room is a bookable room
type Room struct {
	ID         int64
	RoomNumber string
	RoomTypeID int64
	Capacity   int

	// Denormalized for listings
	RoomTypeName string
}
