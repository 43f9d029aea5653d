package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	Actor     domain.Actor
	BookingID int64
	StartTime time.Time
	EndTime   time.Time
}

// Response модель ответа с перенесенным бронированием
type Response struct {
	ID        int64
	UserID    int64
	RoomID    int64
	StartTime time.Time
	EndTime   time.Time
	Status    string

	CreatedAt time.Time
	UpdatedAt time.Time

	Events domain.BookingEvents
}
