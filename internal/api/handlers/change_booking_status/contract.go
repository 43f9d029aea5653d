package change_booking_status

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	changeStatus "github.com/m04kA/SMC-RoomBookingService/internal/usecase/change_booking_status"
)

type ChangeStatusUseCase interface {
	Execute(ctx context.Context, req *changeStatus.Request) (*changeStatus.Response, error)
}

type EventDispatcher interface {
	Dispatch(ctx context.Context, events domain.BookingEvents) int
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
