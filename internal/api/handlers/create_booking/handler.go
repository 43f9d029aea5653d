package create_booking

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC 3339 или YYYY-MM-DDTHH:MM"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgRoomNotFound       = "комната не найдена"
	msgUserNotFound       = "пользователь не найден"
)

type Handler struct {
	useCase    CreateBookingUseCase
	dispatcher EventDispatcher
	location   *time.Location
	logger     Logger
}

func NewHandler(useCase CreateBookingUseCase, dispatcher EventDispatcher, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:    useCase,
		dispatcher: dispatcher,
		location:   loc,
		logger:     logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /bookings - Invalid fields: %v", err)
		handlers.RespondInvalid(w, msgInvalidFields, err)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(actor, h.location)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrRejected):
			h.logger.Warn("POST /bookings - Booking rejected: user_id=%d, room_id=%d, reason=%v",
				actor.UserID, req.RoomID, err)
			handlers.RespondRejection(w, err)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found: room_id=%d", req.RoomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - Owner not found: user_id=%v", req.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFields)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, room_id=%d, error=%v",
				actor.UserID, req.RoomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Бронирование уже сохранено; уведомления доставляются даже если клиент отключился
	h.dispatcher.Dispatch(context.WithoutCancel(r.Context()), result.Events)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, room_id=%d",
		result.ID, result.UserID, result.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
