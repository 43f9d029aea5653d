package cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

type BookingService interface {
	Cancel(ctx context.Context, bookingID int64, actor domain.Actor) (*models.BookingResponse, domain.BookingEvents, error)
}

type EventDispatcher interface {
	Dispatch(ctx context.Context, events domain.BookingEvents) int
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
