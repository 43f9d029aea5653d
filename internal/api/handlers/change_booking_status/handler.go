package change_booking_status

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	changeStatus "github.com/m04kA/SMC-RoomBookingService/internal/usecase/change_booking_status"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStatus      = "некорректный статус"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "менять статус может только администратор"
	msgOverlaps           = "на это время в комнате уже есть активное бронирование"
)

type Handler struct {
	useCase    ChangeStatusUseCase
	dispatcher EventDispatcher
	location   *time.Location
	logger     Logger
}

func NewHandler(useCase ChangeStatusUseCase, dispatcher EventDispatcher, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		dispatcher: dispatcher,
		location:   loc,
		logger:     logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Права проверяем до разбора тела: не администратор получает 403 при любом запросе
	if !actor.IsAdmin() {
		h.logger.Warn("PATCH /bookings/{id}/status - Access denied: user_id=%d", actor.UserID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid status: %v", err)
		handlers.RespondInvalid(w, msgInvalidStatus, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &changeStatus.Request{
		Actor:     actor,
		BookingID: bookingID,
		Status:    domain.BookingStatus(req.Status),
	})
	if err != nil {
		switch {
		case errors.Is(err, changeStatus.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, changeStatus.ErrForbidden):
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, changeStatus.ErrOverlapsActiveBooking):
			h.logger.Warn("PATCH /bookings/{id}/status - Overlaps active booking: booking_id=%d, status=%s",
				bookingID, req.Status)
			handlers.RespondConflict(w, msgOverlaps)

		case errors.Is(err, changeStatus.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("PATCH /bookings/{id}/status - Failed to change status: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.dispatcher.Dispatch(context.WithoutCancel(r.Context()), result.Events)

	h.logger.Info("PATCH /bookings/{id}/status - Status changed: booking_id=%d, %s -> %s",
		bookingID, result.PreviousStatus, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
