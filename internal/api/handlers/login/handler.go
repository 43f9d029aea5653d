package login

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/users"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidFields      = "некорректные поля запроса"
	msgInvalidCredentials = "неверный email или пароль"
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

// Handle POST /api/v1/auth/login
// Публичный маршрут: возвращает ID и роль для заголовка X-User-ID
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid fields: %v", err)
		handlers.RespondInvalid(w, msgInvalidFields, err)
		return
	}

	result, err := h.service.Login(r.Context(), req.ToServiceRequest())
	if err != nil {
		if errors.Is(err, users.ErrInvalidCredentials) {
			h.logger.Warn("POST /auth/login - Invalid credentials: email=%s", req.Email)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
			return
		}

		h.logger.Error("POST /auth/login - Failed to log in: email=%s, error=%v", req.Email, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /auth/login - Login successful: user_id=%d, role=%s", result.UserID, result.Role)
	handlers.RespondJSON(w, http.StatusOK, result)
}
