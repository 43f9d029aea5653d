package mark_notification_read

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/notifications"
)

const (
	msgInvalidNotificationID = "некорректный ID уведомления"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgForbidden             = "уведомление адресовано другому пользователю"
	msgNotFound              = "уведомление не найдено"
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

// Handle PATCH /api/v1/notifications/{notificationId}/read
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	notificationID, err := handlers.PathInt64(r, "notificationId")
	if err != nil {
		h.logger.Warn("PATCH /notifications/{id}/read - Invalid notification ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidNotificationID)
		return
	}

	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("PATCH /notifications/{id}/read - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.MarkRead(r.Context(), actor, notificationID); err != nil {
		switch {
		case errors.Is(err, notifications.ErrNotificationNotFound):
			h.logger.Warn("PATCH /notifications/{id}/read - Notification not found: notification_id=%d", notificationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, notifications.ErrAccessDenied):
			h.logger.Warn("PATCH /notifications/{id}/read - Access denied: notification_id=%d, user_id=%d",
				notificationID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /notifications/{id}/read - Failed to mark read: notification_id=%d, error=%v",
				notificationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /notifications/{id}/read - Notification marked read: notification_id=%d, user_id=%d",
		notificationID, actor.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
