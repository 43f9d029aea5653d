package create_availability_window

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
)

const (
	msgInvalidRoomID      = "некорректный ID комнаты"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля запроса"
	msgInvalidWindow      = "некорректное окно: время в формате HH:MM, начало раньше конца"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "изменять расписание может только администратор"
	msgRoomNotFound       = "комната не найдена"
)

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/rooms/{roomId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathInt64(r, "roomId")
	if err != nil {
		h.logger.Warn("POST /rooms/{id}/availability - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /rooms/{id}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /rooms/{id}/availability - Invalid fields: %v", err)
		handlers.RespondInvalid(w, msgInvalidFields, err)
		return
	}

	window, err := h.service.CreateWindow(r.Context(), actor, req.ToServiceRequest(roomID))
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrAccessDenied):
			h.logger.Warn("POST /rooms/{id}/availability - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rooms.ErrRoomNotFound):
			h.logger.Warn("POST /rooms/{id}/availability - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("POST /rooms/{id}/availability - Invalid window: room_id=%d, error=%v", roomID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("POST /rooms/{id}/availability - Failed to create window: room_id=%d, error=%v", roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rooms/{id}/availability - Window created successfully: room_id=%d, window_id=%d, day=%s",
		roomID, window.ID, window.DayOfWeek)
	handlers.RespondJSON(w, http.StatusCreated, window)
}
