package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

const (
	notificationMessage = "Booking %d rescheduled to %s - %s."
	actionMessage       = "Rescheduled booking %d to %s - %s"
)

// UseCase use case для переноса бронирования на другой интервал
type UseCase struct {
	bookingRepo     BookingRepository
	userRepo        UserRepository
	validator       BookingValidator
	txManager       TransactionManager
	observer        Observer
	timeProvider    TimeProvider
	logger          Logger
	conflictRetries int
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	validator BookingValidator,
	txManager TransactionManager,
	observer Observer,
	logger Logger,
	conflictRetries int,
) *UseCase {
	if conflictRetries < 0 {
		conflictRetries = 0
	}
	return &UseCase{
		bookingRepo:     bookingRepo,
		userRepo:        userRepo,
		validator:       validator,
		txManager:       txManager,
		observer:        observer,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		conflictRetries: conflictRetries,
	}
}

// Execute переносит бронирование. Новый интервал проходит полную проверку,
// само бронирование при этом не считается пересечением.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleBooking: actor=%d role=%s, booking=%d, %s - %s",
		req.Actor.UserID, req.Actor.Role, req.BookingID,
		req.StartTime.Format(domain.DateTimeFormat), req.EndTime.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время фиксируем один раз на весь запрос
	now := uc.timeProvider.Now()

	var (
		result *domain.Booking
		err    error
	)

	// 3. Проверка + обновление, с повтором при конфликте записи
	for attempt := 0; ; attempt++ {
		result, err = uc.rescheduleOnce(ctx, req, now)
		if err == nil || !isWriteConflict(err) {
			break
		}
		if attempt >= uc.conflictRetries {
			uc.logger.Warn("RescheduleBooking: write conflict persisted after %d retries: %v", attempt, err)
			uc.observer.ObserveValidation(string(validator.ReasonOverlapsExistingBooking))
			return nil, fmt.Errorf("%w: %w", ErrRejected, validator.ErrOverlapsExistingBooking)
		}
		uc.observer.ObserveConflictRetry()
		uc.logger.Warn("RescheduleBooking: write conflict on booking id=%d, retrying (%d/%d): %v",
			req.BookingID, attempt+1, uc.conflictRetries, err)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: successfully rescheduled booking id=%d", result.ID)

	// 4. Формируем события для доставки после коммита
	events := uc.buildEvents(ctx, result, req.Actor)

	return &Response{
		ID:        result.ID,
		UserID:    result.UserID,
		RoomID:    result.RoomID,
		StartTime: result.StartTime,
		EndTime:   result.EndTime,
		Status:    string(result.Status),
		CreatedAt: result.CreatedAt,
		UpdatedAt: result.UpdatedAt,
		Events:    events,
	}, nil
}

func (uc *UseCase) rescheduleOnce(ctx context.Context, req *Request, now time.Time) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронирование (строка блокируется до конца транзакции)
		booking, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("RescheduleBooking: booking id=%d not found", req.BookingID)
				return ErrBookingNotFound
			}
			return err
		}

		// 3.2. Права: владелец или администратор
		if !req.Actor.CanAccess(booking.UserID) {
			uc.logger.Warn("RescheduleBooking: user id=%d has no access to booking id=%d", req.Actor.UserID, booking.ID)
			return ErrForbidden
		}
		if !booking.CanBeRescheduledBy(req.Actor) {
			uc.logger.Warn("RescheduleBooking: booking id=%d in status %s cannot be rescheduled by actor=%d",
				booking.ID, booking.Status, req.Actor.UserID)
			return ErrNotReschedulable
		}

		// 3.3. Блокируем комнату
		if err := uc.bookingRepo.LockRoom(txCtx, booking.RoomID); err != nil {
			return err
		}

		// 3.4. Проверяем новый интервал без учета самого бронирования
		verdict, err := uc.validator.Validate(txCtx, validator.Candidate{
			RoomID:           booking.RoomID,
			StartTime:        req.StartTime,
			EndTime:          req.EndTime,
			ExcludeBookingID: &booking.ID,
		}, now)
		if err != nil {
			// Конфликт сериализации при чтении разрешается повтором проверки
			if isWriteConflict(err) {
				return err
			}
			uc.logger.Error("RescheduleBooking: validator failed: %v", err)
			return fmt.Errorf("%w: validate: %v", ErrInternal, err)
		}
		uc.observer.ObserveValidation(verdict.String())
		if !verdict.Accepted() {
			uc.logger.Warn("RescheduleBooking: rejected booking id=%d: %s", booking.ID, verdict)
			return fmt.Errorf("%w: %w", ErrRejected, verdict.Err())
		}

		// 3.5. Сохраняем новый интервал
		if err := uc.bookingRepo.UpdateTimes(txCtx, booking.ID, req.StartTime, req.EndTime); err != nil {
			return err
		}

		booking.StartTime = req.StartTime
		booking.EndTime = req.EndTime
		booking.UpdatedAt = now
		result = booking
		return nil
	})
	if err == nil {
		return result, nil
	}

	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrNotReschedulable),
		errors.Is(err, ErrRejected),
		errors.Is(err, ErrInternal),
		isWriteConflict(err):
		return nil, err
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		return nil, ErrBookingNotFound
	default:
		uc.logger.Error("RescheduleBooking: failed to reschedule booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to reschedule booking: %v", ErrInternal, err)
	}
}

func (uc *UseCase) buildEvents(ctx context.Context, booking *domain.Booking, actor domain.Actor) domain.BookingEvents {
	adminIDs, err := uc.userRepo.ListAdminIDs(ctx)
	if err != nil {
		uc.logger.Warn("RescheduleBooking: failed to list admins, notifying owner only: %v", err)
		adminIDs = nil
	}

	loc := uc.validator.Location()
	from := booking.StartTime.In(loc).Format(domain.DateTimeFormat)
	to := booking.EndTime.In(loc).Format(domain.DateTimeFormat)

	return domain.NewBookingEvents(booking, actor.UserID, adminIDs,
		fmt.Sprintf(notificationMessage, booking.ID, from, to),
		fmt.Sprintf(actionMessage, booking.ID, from, to))
}

func isWriteConflict(err error) bool {
	return errors.Is(err, bookingRepo.ErrConflict) ||
		errors.Is(err, availabilityRepo.ErrConflict) ||
		errors.Is(err, txmanager.ErrSerializationFailure)
}
