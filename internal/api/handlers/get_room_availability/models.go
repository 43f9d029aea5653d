package get_room_availability

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	getRoomAvailability "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_room_availability"
)

// RoomAvailabilityResponse HTTP response model
type RoomAvailabilityResponse struct {
	RoomID     int64    `json:"roomId"`
	RoomNumber string   `json:"roomNumber"`
	Date       string   `json:"date"`
	DayOfWeek  string   `json:"dayOfWeek"`
	Windows    []Window `json:"windows"`
}

// Window окно доступности на дату
type Window struct {
	ID        int64       `json:"id"`
	StartTime string      `json:"startTime"`
	EndTime   string      `json:"endTime"`
	Open      bool        `json:"open"`
	Past      bool        `json:"past"`
	Available bool        `json:"available"`
	Bookings  []BusyRange `json:"bookings"`
}

// BusyRange занятый интервал
type BusyRange struct {
	BookingID int64     `json:"bookingId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getRoomAvailability.Response, loc *time.Location) *RoomAvailabilityResponse {
	windows := make([]Window, len(resp.Windows))
	for i, w := range resp.Windows {
		busy := make([]BusyRange, len(w.Bookings))
		for j, b := range w.Bookings {
			busy[j] = BusyRange{
				BookingID: b.BookingID,
				StartTime: b.StartTime.In(loc),
				EndTime:   b.EndTime.In(loc),
				Status:    b.Status,
			}
		}

		windows[i] = Window{
			ID:        w.ID,
			StartTime: w.StartTime.String(),
			EndTime:   w.EndTime.String(),
			Open:      w.Open,
			Past:      w.Past,
			Available: w.Available,
			Bookings:  busy,
		}
	}

	return &RoomAvailabilityResponse{
		RoomID:     resp.RoomID,
		RoomNumber: resp.RoomNumber,
		Date:       resp.Date.Format(domain.DateFormat),
		DayOfWeek:  string(resp.DayOfWeek),
		Windows:    windows,
	}
}

// ToUseCaseRequest создает запрос use case; дата читается в часовом поясе сервиса
func ToUseCaseRequest(roomID int64, dateStr string, loc *time.Location) (*getRoomAvailability.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, dateStr, loc)
	if err != nil {
		return nil, err
	}

	return &getRoomAvailability.Request{
		RoomID: roomID,
		Date:   date,
	}, nil
}
