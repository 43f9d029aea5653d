package change_booking_status

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модель запроса на смену статуса
type Request struct {
	Actor     domain.Actor
	BookingID int64
	Status    domain.BookingStatus
}

// Response модель ответа с обновленным бронированием
type Response struct {
	ID             int64
	UserID         int64
	RoomID         int64
	StartTime      time.Time
	EndTime        time.Time
	Status         string
	PreviousStatus string

	CreatedAt time.Time
	UpdatedAt time.Time

	Events domain.BookingEvents
}
