package list_action_logs

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/notifications"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidParams = "некорректные параметры пагинации"
	msgForbidden     = "журнал действий доступен только администратору"
)

// Верхняя граница размера страницы
const maxLimit = 1000

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

// Handle GET /api/v1/action-logs
// Query params: limit, offset (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		h.logger.Warn("GET /action-logs - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	limit, err := parseUint(r.URL.Query().Get("limit"))
	if err != nil || limit > maxLimit {
		h.logger.Warn("GET /action-logs - Invalid limit: %q", r.URL.Query().Get("limit"))
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	offset, err := parseUint(r.URL.Query().Get("offset"))
	if err != nil {
		h.logger.Warn("GET /action-logs - Invalid offset: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListActionLogs(r.Context(), actor, limit, offset)
	if err != nil {
		if errors.Is(err, notifications.ErrAccessDenied) {
			h.logger.Warn("GET /action-logs - Access denied: user_id=%d", actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}

		h.logger.Error("GET /action-logs - Failed to list action logs: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /action-logs - Action logs retrieved successfully: count=%d, offset=%d", len(result.Entries), offset)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseUint(raw string) (uint64, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseUint(raw, 10, 64)
}
