package list_notifications

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/notifications"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "уведомления доступны только получателю"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/notifications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, err := handlers.PathInt64(r, "userId")
	if err != nil {
		h.logger.Warn("GET /users/{userId}/notifications - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/notifications - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.ListForUser(r.Context(), actor, userID)
	if err != nil {
		if errors.Is(err, notifications.ErrAccessDenied) {
			h.logger.Warn("GET /users/{userId}/notifications - Access denied: user_id=%d, actor_id=%d",
				userID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}

		h.logger.Error("GET /users/{userId}/notifications - Failed to list notifications: user_id=%d, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/notifications - Notifications retrieved successfully: user_id=%d, count=%d, unread=%d",
		userID, len(result.Notifications), result.Unread)
	handlers.RespondJSON(w, http.StatusOK, result)
}
