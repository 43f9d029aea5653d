package create_user

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/users"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "создавать пользователей может только администратор"
	msgEmailTaken         = "пользователь с таким email уже существует"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/users
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("POST /users - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateUserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /users - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /users - Invalid fields: %v", err)
		handlers.RespondInvalid(w, msgInvalidFields, err)
		return
	}

	user, err := h.service.Create(r.Context(), actor, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, users.ErrAccessDenied):
			h.logger.Warn("POST /users - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, users.ErrEmailTaken):
			h.logger.Warn("POST /users - Email taken: email=%s", req.Email)
			handlers.RespondConflict(w, msgEmailTaken)

		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("POST /users - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFields)

		default:
			h.logger.Error("POST /users - Failed to create user: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /users - User created successfully: user_id=%d, role=%s", user.ID, user.Role)
	handlers.RespondJSON(w, http.StatusCreated, user)
}
