package delete_availability_window

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

type RoomService interface {
	DeleteWindow(ctx context.Context, actor domain.Actor, windowID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
