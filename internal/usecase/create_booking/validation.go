package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}

	if req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}

	if req.UserID != nil && *req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Status != nil && !req.Status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}

	return nil
}

// resolveOwnerAndStatus пользователь всегда бронирует на себя со статусом pending,
// администратор может указать владельца и статус явно
func resolveOwnerAndStatus(req *Request) (int64, domain.BookingStatus) {
	if !req.Actor.IsAdmin() {
		return req.Actor.UserID, domain.StatusPending
	}

	ownerID := req.Actor.UserID
	if req.UserID != nil {
		ownerID = *req.UserID
	}

	status := domain.StatusPending
	if req.Status != nil {
		status = *req.Status
	}

	return ownerID, status
}
