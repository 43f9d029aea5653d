package change_booking_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
)

const (
	notificationMessage = "Booking %d status updated to %s."
	actionMessage       = "Changed booking %d status from %s to %s"
)

// UseCase смена статуса бронирования администратором.
// В отличие от отмены владельцем, переход не проверяется по машине состояний:
// администратор может выставить любой из четырех статусов.
type UseCase struct {
	bookingRepo BookingRepository
	userRepo    UserRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case смены статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ChangeBookingStatus: actor=%d role=%s, booking=%d, status=%s",
		req.Actor.UserID, req.Actor.Role, req.BookingID, req.Status)

	// 1. Только администратор
	if !req.Actor.IsAdmin() {
		uc.logger.Warn("ChangeBookingStatus: user id=%d is not an administrator", req.Actor.UserID)
		return nil, ErrForbidden
	}

	// 2. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ChangeBookingStatus: validation failed: %v", err)
		return nil, err
	}

	var (
		result   *domain.Booking
		previous domain.BookingStatus
	)

	// 3. Читаем и обновляем в одной транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			return err
		}

		if err := uc.bookingRepo.UpdateStatus(txCtx, booking.ID, req.Status); err != nil {
			return err
		}

		previous = booking.Status
		booking.Status = req.Status
		result = booking
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			uc.logger.Warn("ChangeBookingStatus: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrConflict):
			uc.logger.Warn("ChangeBookingStatus: booking id=%d overlaps an active booking: %v", req.BookingID, err)
			return nil, ErrOverlapsActiveBooking
		default:
			uc.logger.Error("ChangeBookingStatus: failed to update booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("ChangeBookingStatus: booking id=%d %s -> %s", result.ID, previous, result.Status)

	// 4. Уведомления владельцу и администраторам
	adminIDs, err := uc.userRepo.ListAdminIDs(ctx)
	if err != nil {
		uc.logger.Warn("ChangeBookingStatus: failed to list admins, notifying owner only: %v", err)
		adminIDs = nil
	}
	events := domain.NewBookingEvents(result, req.Actor.UserID, adminIDs,
		fmt.Sprintf(notificationMessage, result.ID, result.Status),
		fmt.Sprintf(actionMessage, result.ID, previous, result.Status))

	return &Response{
		ID:             result.ID,
		UserID:         result.UserID,
		RoomID:         result.RoomID,
		StartTime:      result.StartTime,
		EndTime:        result.EndTime,
		Status:         string(result.Status),
		PreviousStatus: string(previous),
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
		Events:         events,
	}, nil
}
