package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

const (
	cancelMessage = "Booking %d status updated to cancelled."
	cancelAction  = "Cancelled booking %d"
	deleteMessage = "Booking %d was deleted by an administrator."
	deleteAction  = "Deleted booking %d (room %d, %s - %s)"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	txManager    TransactionManager
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		location:     loc,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Видеть бронирование может владелец или администратор.
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.Actor) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, actor.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !actor.CanAccess(booking.UserID) {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking, s.location), nil
}

// GetUserBookings возвращает все бронирования пользователя (включая отмененные),
// разложенные на прошедшие, сегодняшние и будущие по календарной дате в часовом поясе сервиса
func (s *Service) GetUserBookings(ctx context.Context, userID int64, actor domain.Actor) (*models.GroupedBookingsResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d by actor=%d", userID, actor.UserID)

	if userID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if !actor.CanAccess(userID) {
		s.logger.Warn("GetUserBookings: access denied for actor=%d to user=%d", actor.UserID, userID)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		UserID:          &userID,
		IncludeInactive: true,
	})
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	resp := groupByDay(bookings, s.timeProvider.Now(), s.location)

	s.logger.Info("GetUserBookings: user=%d past=%d today=%d future=%d",
		userID, len(resp.Past), len(resp.Today), len(resp.Future))
	return resp, nil
}

// ListBookings список бронирований с фильтрами. Только для администратора.
func (s *Service) ListBookings(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListBookings: actor=%d", req.Actor.UserID)

	if !req.Actor.IsAdmin() {
		s.logger.Warn("ListBookings: user=%d is not an administrator", req.Actor.UserID)
		return nil, ErrAccessDenied
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListBookings: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListBookings: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBookings: fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings, s.location), nil
}

// Cancel отменяет бронирование. Переход проверяется машиной состояний:
// отменить можно только pending или approved бронирование.
// Отменяет владелец или администратор.
func (s *Service) Cancel(ctx context.Context, bookingID int64, actor domain.Actor) (*models.BookingResponse, domain.BookingEvents, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, actor.UserID)

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		if !actor.CanAccess(booking.UserID) {
			return ErrAccessDenied
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, domain.StatusCancelled); err != nil {
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		result = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Cancel: booking id=%d: %v", bookingID, err)
		} else {
			s.logger.Warn("Cancel: booking id=%d: %v", bookingID, err)
		}
		return nil, domain.BookingEvents{}, err
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

	events := domain.NewBookingEvents(result, actor.UserID, s.adminIDs(ctx, "Cancel"),
		fmt.Sprintf(cancelMessage, result.ID),
		fmt.Sprintf(cancelAction, result.ID))

	return models.FromDomainBooking(result, s.location), events, nil
}

// Delete полностью удаляет бронирование. Только для администратора.
// Владелец получает уведомление без ссылки на удаленное бронирование.
func (s *Service) Delete(ctx context.Context, bookingID int64, actor domain.Actor) (domain.BookingEvents, error) {
	s.logger.Info("Delete: deleting booking id=%d by user=%d", bookingID, actor.UserID)

	if !actor.IsAdmin() {
		s.logger.Warn("Delete: user=%d is not an administrator", actor.UserID)
		return domain.BookingEvents{}, ErrAccessDenied
	}

	var deleted *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			return err
		}
		if err := s.bookingRepo.Delete(txCtx, bookingID); err != nil {
			return err
		}
		deleted = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", bookingID)
			return domain.BookingEvents{}, ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return domain.BookingEvents{}, fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted booking id=%d", bookingID)

	events := domain.BookingEvents{
		Notifications: []domain.Notification{{
			UserID:  deleted.UserID,
			Message: fmt.Sprintf(deleteMessage, deleted.ID),
			Status:  domain.NotificationUnread,
		}},
		ActionLogs: []domain.ActionLog{{
			UserID: actor.UserID,
			Action: fmt.Sprintf(deleteAction, deleted.ID, deleted.RoomID,
				deleted.StartTime.In(s.location).Format(domain.DateTimeFormat),
				deleted.EndTime.In(s.location).Format(domain.DateTimeFormat)),
		}},
	}

	return events, nil
}

// Вспомогательные методы

// adminIDs получатели уведомлений; ошибка не мешает основной операции
func (s *Service) adminIDs(ctx context.Context, op string) []int64 {
	ids, err := s.userRepo.ListAdminIDs(ctx)
	if err != nil {
		s.logger.Warn("%s: failed to list admins, notifying owner only: %v", op, err)
		return nil
	}
	return ids
}

// groupByDay раскладывает бронирования по календарной дате в loc:
// прошедшие закончились до сегодня, сегодняшние захватывают сегодня, будущие начинаются после.
func groupByDay(bookings []*domain.Booking, now time.Time, loc *time.Location) *models.GroupedBookingsResponse {
	y, m, d := now.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, loc)
	tomorrow := today.AddDate(0, 0, 1)

	resp := &models.GroupedBookingsResponse{
		Date:   today.Format(domain.DateFormat),
		Past:   make([]models.BookingResponse, 0),
		Today:  make([]models.BookingResponse, 0),
		Future: make([]models.BookingResponse, 0),
	}

	for _, b := range bookings {
		item := *models.FromDomainBooking(b, loc)
		switch {
		case b.EndTime.Before(today):
			resp.Past = append(resp.Past, item)
		case !b.StartTime.Before(tomorrow):
			resp.Future = append(resp.Future, item)
		default:
			resp.Today = append(resp.Today, item)
		}
	}

	return resp
}
