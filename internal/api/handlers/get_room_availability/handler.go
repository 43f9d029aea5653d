package get_room_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	getRoomAvailability "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_room_availability"
)

const (
	msgInvalidRoomID = "некорректный ID комнаты"
	msgMissingDate   = "дата обязательна"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgRoomNotFound  = "комната не найдена"
)

type Handler struct {
	useCase  GetRoomAvailabilityUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetRoomAvailabilityUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: loc,
		logger:   logger,
	}
}

// Handle GET /api/v1/rooms/{roomId}/availability
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	roomID, err := handlers.PathInt64(r, "roomId")
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid room ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRoomID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /rooms/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(roomID, dateStr, h.location)
	if err != nil {
		h.logger.Warn("GET /rooms/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getRoomAvailability.ErrRoomNotFound):
			h.logger.Warn("GET /rooms/{id}/availability - Room not found: room_id=%d", roomID)
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, getRoomAvailability.ErrInvalidInput):
			h.logger.Warn("GET /rooms/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		default:
			h.logger.Error("GET /rooms/{id}/availability - Failed to get availability: room_id=%d, error=%v",
				roomID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /rooms/{id}/availability - Availability retrieved successfully: room_id=%d, date=%s, windows=%d",
		roomID, dateStr, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
