package delete_availability_window

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
)

const (
	msgInvalidWindowID = "некорректный ID окна"
	msgMissingUserID   = "отсутствует ID пользователя"
	msgForbidden       = "изменять расписание может только администратор"
	msgNotFound        = "окно доступности не найдено"
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

// Handle DELETE /api/v1/availability-windows/{windowId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	windowID, err := handlers.PathInt64(r, "windowId")
	if err != nil {
		h.logger.Warn("DELETE /availability-windows/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("DELETE /availability-windows/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteWindow(r.Context(), actor, windowID); err != nil {
		switch {
		case errors.Is(err, rooms.ErrAccessDenied):
			h.logger.Warn("DELETE /availability-windows/{id} - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rooms.ErrWindowNotFound):
			h.logger.Warn("DELETE /availability-windows/{id} - Window not found: window_id=%d", windowID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /availability-windows/{id} - Failed to delete window: window_id=%d, error=%v", windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability-windows/{id} - Window deleted successfully: window_id=%d", windowID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
