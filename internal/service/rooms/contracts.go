package rooms

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error)
	GetRoomByID(ctx context.Context, id int64) (*domain.Room, error)
	ListRooms(ctx context.Context) ([]*domain.Room, error)
	CreateRoomType(ctx context.Context, roomType *domain.RoomType) (*domain.RoomType, error)
	ListRoomTypes(ctx context.Context) ([]*domain.RoomType, error)
}

// AvailabilityRepository интерфейс репозитория окон доступности
type AvailabilityRepository interface {
	ListByRoom(ctx context.Context, roomID int64) ([]*domain.AvailabilityWindow, error)
	Create(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error)
	Delete(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
