package delete_booking

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

type BookingService interface {
	Delete(ctx context.Context, bookingID int64, actor domain.Actor) (domain.BookingEvents, error)
}

type EventDispatcher interface {
	Dispatch(ctx context.Context, events domain.BookingEvents) int
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
