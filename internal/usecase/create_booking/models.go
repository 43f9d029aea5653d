package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Actor     domain.Actor          // Кто выполняет запрос
	UserID    *int64                // Владелец (только для администратора, по умолчанию сам actor)
	RoomID    int64                 // ID комнаты
	StartTime time.Time             // Начало
	EndTime   time.Time             // Окончание
	Status    *domain.BookingStatus // Статус (только для администратора, для пользователя всегда pending)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID        int64
	UserID    int64
	RoomID    int64
	StartTime time.Time
	EndTime   time.Time
	Status    string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Уведомления и запись журнала, которые нужно доставить после коммита
	Events domain.BookingEvents
}
