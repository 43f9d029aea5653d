package list_room_types

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

// Handle GET /api/v1/room-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListRoomTypes(r.Context())
	if err != nil {
		h.logger.Error("GET /room-types - Failed to list room types: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /room-types - Room types retrieved successfully: count=%d", len(result.RoomTypes))
	handlers.RespondJSON(w, http.StatusOK, result)
}
