package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/availability"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	userRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
	"github.com/m04kA/SMC-RoomBookingService/pkg/txmanager"
)

const (
	notificationMessage = "Booking %d submitted for room %s: %s - %s (%s)."
	actionMessage       = "Created booking %d for user %d in room %s with status %s"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo     BookingRepository
	roomRepo        RoomRepository
	userRepo        UserRepository
	validator       BookingValidator
	txManager       TransactionManager
	observer        Observer
	timeProvider    TimeProvider
	logger          Logger
	conflictRetries int
}

// NewUseCase создает новый экземпляр use case.
// conflictRetries - сколько раз повторить проверку после конфликта при записи.
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
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
		roomRepo:        roomRepo,
		userRepo:        userRepo,
		validator:       validator,
		txManager:       txManager,
		observer:        observer,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
		conflictRetries: conflictRetries,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка и вставка идут в одной сериализуемой транзакции под блокировкой комнаты.
// Если запись все равно проиграла гонку, проверка повторяется на свежих данных.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%d role=%s, room=%d, %s - %s",
		req.Actor.UserID, req.Actor.Role, req.RoomID,
		req.StartTime.Format(domain.DateTimeFormat), req.EndTime.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем владельца и статус в зависимости от роли
	ownerID, status := resolveOwnerAndStatus(req)
	if !req.Actor.IsAdmin() && req.Status != nil && *req.Status != domain.StatusPending {
		uc.logger.Warn("CreateBooking: user id=%d requested status %s, forced to pending", req.Actor.UserID, *req.Status)
	}

	// 3. Проверяем комнату
	room, err := uc.roomRepo.GetRoomByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			uc.logger.Warn("CreateBooking: room id=%d not found", req.RoomID)
			return nil, ErrRoomNotFound
		}
		uc.logger.Error("CreateBooking: failed to get room id=%d: %v", req.RoomID, err)
		return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
	}

	// 4. Администратор бронирует за другого пользователя - он должен существовать
	if ownerID != req.Actor.UserID {
		if _, err := uc.userRepo.GetByID(ctx, ownerID); err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				uc.logger.Warn("CreateBooking: owner id=%d not found", ownerID)
				return nil, ErrUserNotFound
			}
			uc.logger.Error("CreateBooking: failed to get owner id=%d: %v", ownerID, err)
			return nil, fmt.Errorf("%w: failed to get owner: %v", ErrInternal, err)
		}
	}

	// 5. Текущее время фиксируем один раз на весь запрос
	now := uc.timeProvider.Now()

	candidate := validator.Candidate{
		RoomID:    req.RoomID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Inactive:  !status.IsActive(),
	}

	var result *domain.Booking

	// 6. Проверка + вставка, с повтором при конфликте записи
	for attempt := 0; ; attempt++ {
		result, err = uc.createOnce(ctx, candidate, ownerID, status, now)
		if err == nil || !isWriteConflict(err) {
			break
		}
		if attempt >= uc.conflictRetries {
			uc.logger.Warn("CreateBooking: write conflict persisted after %d retries: %v", attempt, err)
			uc.observer.ObserveValidation(string(validator.ReasonOverlapsExistingBooking))
			return nil, fmt.Errorf("%w: %w", ErrRejected, validator.ErrOverlapsExistingBooking)
		}
		uc.observer.ObserveConflictRetry()
		uc.logger.Warn("CreateBooking: write conflict on room id=%d, retrying (%d/%d): %v",
			req.RoomID, attempt+1, uc.conflictRetries, err)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d status=%s", result.ID, result.Status)

	// 7. Формируем события для доставки после коммита
	events := uc.buildEvents(ctx, result, req.Actor, room)

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

// createOnce одна попытка: блокировка комнаты, проверка, вставка
func (uc *UseCase) createOnce(
	ctx context.Context,
	candidate validator.Candidate,
	ownerID int64,
	status domain.BookingStatus,
	now time.Time,
) (*domain.Booking, error) {
	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Блокируем комнату до конца транзакции
		if err := uc.bookingRepo.LockRoom(txCtx, candidate.RoomID); err != nil {
			return err
		}

		// 6.2. Проверяем кандидата
		verdict, err := uc.validator.Validate(txCtx, candidate, now)
		if err != nil {
			// Конфликт сериализации при чтении разрешается повтором проверки
			if isWriteConflict(err) {
				return err
			}
			uc.logger.Error("CreateBooking: validator failed: %v", err)
			return fmt.Errorf("%w: validate: %v", ErrInternal, err)
		}
		uc.observer.ObserveValidation(verdict.String())
		if !verdict.Accepted() {
			uc.logger.Warn("CreateBooking: rejected room id=%d: %s", candidate.RoomID, verdict)
			return fmt.Errorf("%w: %w", ErrRejected, verdict.Err())
		}

		// 6.3. Сохраняем бронирование
		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:    ownerID,
			RoomID:    candidate.RoomID,
			StartTime: candidate.StartTime,
			EndTime:   candidate.EndTime,
			Status:    status,
		})
		if err != nil {
			return err
		}

		result = created
		return nil
	})
	if err == nil {
		return result, nil
	}

	switch {
	case errors.Is(err, ErrRejected), errors.Is(err, ErrInternal), isWriteConflict(err):
		return nil, err
	case errors.Is(err, bookingRepo.ErrReferenceNotFound):
		return nil, ErrRoomNotFound
	default:
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}
}

// buildEvents уведомления владельцу и администраторам, запись журнала от имени actor.
// Не удалось получить администраторов - уведомляем только владельца.
func (uc *UseCase) buildEvents(ctx context.Context, booking *domain.Booking, actor domain.Actor, room *domain.Room) domain.BookingEvents {
	adminIDs, err := uc.userRepo.ListAdminIDs(ctx)
	if err != nil {
		uc.logger.Warn("CreateBooking: failed to list admins, notifying owner only: %v", err)
		adminIDs = nil
	}

	loc := uc.validator.Location()
	message := fmt.Sprintf(notificationMessage,
		booking.ID, room.RoomNumber,
		booking.StartTime.In(loc).Format(domain.DateTimeFormat), booking.EndTime.In(loc).Format(domain.DateTimeFormat),
		booking.Status)
	action := fmt.Sprintf(actionMessage, booking.ID, booking.UserID, room.RoomNumber, booking.Status)

	return domain.NewBookingEvents(booking, actor.UserID, adminIDs, message, action)
}

// isWriteConflict конфликт, обнаруженный при записи: повтор проверки может его разрешить
func isWriteConflict(err error) bool {
	return errors.Is(err, bookingRepo.ErrConflict) ||
		errors.Is(err, availabilityRepo.ErrConflict) ||
		errors.Is(err, txmanager.ErrSerializationFailure)
}
