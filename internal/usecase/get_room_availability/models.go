package get_room_availability

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Request модель запроса расписания комнаты на дату
type Request struct {
	RoomID int64     // ID комнаты
	Date   time.Time // Дата (время суток игнорируется)
}

// Response модель ответа с окнами на дату
type Response struct {
	RoomID     int64
	RoomNumber string
	Date       time.Time      // Полночь даты в часовом поясе сервиса
	DayOfWeek  domain.Weekday // День недели даты
	Windows    []Window       // Окна по времени начала
}

// Window окно доступности на конкретную дату
type Window struct {
	ID        int64
	StartTime types.TimeString
	EndTime   types.TimeString

	Open      bool // Окно помечено доступным в расписании
	Past      bool // Окно уже закончилось
	Available bool // Открыто, не в прошлом и не пересекается ни с одним активным бронированием

	// Активные бронирования, пересекающие окно
	Bookings []BusyRange
}

// BusyRange занятый интервал внутри окна
type BusyRange struct {
	BookingID int64
	StartTime time.Time
	EndTime   time.Time
	Status    string
}
