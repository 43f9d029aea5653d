package reschedule_booking

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	rescheduleBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/reschedule_booking"
)

type RescheduleBookingUseCase interface {
	Execute(ctx context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error)
}

type EventDispatcher interface {
	Dispatch(ctx context.Context, events domain.BookingEvents) int
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
