package get_room_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
)

// UseCase use case для получения расписания комнаты на дату с отметкой занятых окон
type UseCase struct {
	roomRepo         RoomRepository
	availabilityRepo AvailabilityRepository
	bookingRepo      BookingRepository
	location         *time.Location
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case. loc - часовой пояс окон доступности.
func NewUseCase(
	roomRepo RoomRepository,
	availabilityRepo AvailabilityRepository,
	bookingRepo BookingRepository,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		roomRepo:         roomRepo,
		availabilityRepo: availabilityRepo,
		bookingRepo:      bookingRepo,
		location:         loc,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetRoomAvailability: room=%d, date=%s", req.RoomID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.RoomID <= 0 {
		return nil, fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// 2. Получаем комнату
	room, err := uc.roomRepo.GetRoomByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("GetRoomAvailability: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("GetRoomAvailability: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 3. Дата в часовом поясе сервиса
	y, m, d := req.Date.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, uc.location)
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekday := domain.WeekdayOf(dayStart)

	// 4. Окна на день недели
	windows, err := uc.availabilityRepo.GetByRoomAndDay(ctx, req.RoomID, weekday)
	if err != nil {
		uc.logger.Error("GetRoomAvailability: failed to get windows room=%d day=%s: %v", req.RoomID, weekday, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 5. Активные бронирования комнаты на дату
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		RoomID: &req.RoomID,
		From:   &dayStart,
		To:     &dayEnd,
	})
	if err != nil {
		uc.logger.Error("GetRoomAvailability: failed to get bookings room=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Отмечаем окна
	now := uc.timeProvider.Now()
	result := make([]Window, 0, len(windows))
	for _, w := range windows {
		result = append(result, markWindow(w, dayStart, bookings, now, uc.location))
	}

	return &Response{
		RoomID:     room.ID,
		RoomNumber: room.RoomNumber,
		Date:       dayStart,
		DayOfWeek:  weekday,
		Windows:    result,
	}, nil
}

// markWindow окно свободно, если оно открыто, еще не закончилось
// и ни одно активное бронирование его не пересекает (строгое пересечение)
func markWindow(w *domain.AvailabilityWindow, day time.Time, bookings []*domain.Booking, now time.Time, loc *time.Location) Window {
	start, end := w.On(day, loc)

	busy := make([]BusyRange, 0)
	for _, b := range bookings {
		if b.IsActive() && b.Overlaps(start, end) {
			busy = append(busy, BusyRange{
				BookingID: b.ID,
				StartTime: b.StartTime.In(loc),
				EndTime:   b.EndTime.In(loc),
				Status:    string(b.Status),
			})
		}
	}

	past := !end.After(now)

	return Window{
		ID:        w.ID,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		Open:      w.IsAvailable,
		Past:      past,
		Available: w.IsAvailable && !past && len(busy) == 0,
		Bookings:  busy,
	}
}
