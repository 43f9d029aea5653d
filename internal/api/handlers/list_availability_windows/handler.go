package list_availability_windows

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgRoomNotFound  = "комната не найдена"
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

// Handle GET /api/v1/rooms/{roomId}/availability-windows
// Возвращает недельное расписание комнаты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathInt64(r, "roomId")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability-windows - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	result, err := h.service.ListWindows(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, rooms.ErrRoomNotFound) {
			h.logger.Warn("GET /rooms/{id}/availability-windows - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)
			return
		}

		h.logger.Error("GET /rooms/{id}/availability-windows - Failed to list windows: room_id=%d, error=%v", roomID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms/{id}/availability-windows - Windows retrieved successfully: room_id=%d, count=%d",
		roomID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}
