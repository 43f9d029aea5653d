package list_rooms

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
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

// Handle GET /api/v1/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListRooms(r.Context())
	if err != nil {
		h.logger.Error("GET /rooms - Failed to list rooms: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /rooms - Rooms retrieved successfully: count=%d", len(result.Rooms))
	handlers.RespondJSON(w, http.StatusOK, result)
}
