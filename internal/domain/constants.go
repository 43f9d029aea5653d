package domain

// Time format constants
const (
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	DateTimeFormat = "2006-01-02 15:04"
)

// Business validation constants
const (
	MaxRoomNumberLength   = 10
	MaxRoomTypeNameLength = 50
	MaxUserNameLength     = 100
	MaxRoomCapacity       = 10000
)

// ActiveStatuses статусы, блокирующие пересекающиеся бронирования
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
}
