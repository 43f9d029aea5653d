package validator

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// AvailabilitySource окна доступности комнаты
type AvailabilitySource interface {
	// GetByRoomAndDay возвращает окна комнаты на день недели, упорядоченные по времени начала
	GetByRoomAndDay(ctx context.Context, roomID int64, day domain.Weekday) ([]*domain.AvailabilityWindow, error)
}

// BookingSource существующие бронирования
type BookingSource interface {
	// HasActiveOverlap ищет pending/approved бронирование комнаты с start < end и end > start.
	// excludeID исключает перепроверяемое бронирование.
	HasActiveOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeID *int64) (bool, error)
}
