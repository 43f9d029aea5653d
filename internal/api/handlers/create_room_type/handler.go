package create_room_type

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
	msgForbidden          = "создавать типы комнат может только администратор"
	msgNameTaken          = "тип комнаты с таким названием уже существует"
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

// Handle POST /api/v1/room-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /room-types - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRoomTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /room-types - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /room-types - Invalid fields: %v", err)
		handlers.RespondInvalid(w, msgInvalidFields, err)
		return
	}

	roomType, err := h.service.CreateRoomType(r.Context(), actor, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrAccessDenied):
			h.logger.Warn("POST /room-types - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rooms.ErrRoomTypeNameTaken):
			h.logger.Warn("POST /room-types - Name taken: name=%s", req.Name)
			handlers.RespondConflict(w, msgNameTaken)

		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("POST /room-types - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFields)

		default:
			h.logger.Error("POST /room-types - Failed to create room type: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /room-types - Room type created successfully: room_type_id=%d, name=%s", roomType.ID, roomType.Name)
	handlers.RespondJSON(w, http.StatusCreated, roomType)
}
