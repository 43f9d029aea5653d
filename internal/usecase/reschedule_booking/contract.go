package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	LockRoom(ctx context.Context, roomID int64) error
	UpdateTimes(ctx context.Context, id int64, start, end time.Time) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	ListAdminIDs(ctx context.Context) ([]int64, error)
}

// BookingValidator проверка кандидата на доступность и пересечения
type BookingValidator interface {
	Validate(ctx context.Context, c validator.Candidate, now time.Time) (validator.Verdict, error)
	Location() *time.Location
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Observer метрики проверок бронирований
type Observer interface {
	ObserveValidation(outcome string)
	ObserveConflictRetry()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
