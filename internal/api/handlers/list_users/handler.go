package list_users

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/users"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
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

// Handle GET /api/v1/users
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /users - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.List(r.Context(), actor)
	if err != nil {
		if errors.Is(err, users.ErrAccessDenied) {
			h.logger.Warn("GET /users - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}

		h.logger.Error("GET /users - Failed to list users: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users - Users retrieved successfully: count=%d", len(result.Users))
	handlers.RespondJSON(w, http.StatusOK, result)
}
