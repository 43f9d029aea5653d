package middleware

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// UserRepository источник ролей пользователей для Auth
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
