package create_room

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "создавать комнаты может только администратор"
	msgRoomTypeNotFound   = "тип комнаты не найден"
	msgRoomNumberTaken    = "комната с таким номером уже существует"
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

// Handle POST /api/v1/rooms
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /rooms - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRoomRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rooms - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /rooms - Invalid fields: %v", err)
		handlers.RespondInvalid(w, msgInvalidFields, err)
		return
	}

	room, err := h.service.CreateRoom(r.Context(), actor, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrAccessDenied):
			h.logger.Warn("POST /rooms - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rooms.ErrRoomTypeNotFound):
			h.logger.Warn("POST /rooms - Room type not found: room_type_id=%d", req.RoomTypeID)
			handlers.RespondNotFound(w, msgRoomTypeNotFound)

		case errors.Is(err, rooms.ErrRoomNumberTaken):
			h.logger.Warn("POST /rooms - Room number taken: room_number=%s", req.RoomNumber)
			handlers.RespondConflict(w, msgRoomNumberTaken)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("POST /rooms - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFields)

		default:
			h.logger.Error("POST /rooms - Failed to create room: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /rooms - Room created successfully: room_id=%d, room_number=%s", room.ID, room.RoomNumber)
	handlers.RespondJSON(w, http.StatusCreated, room)
}
