package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	userRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/user"
)

// UserIDHeader заголовок с ID пользователя, от имени которого выполняется запрос
const UserIDHeader = "X-User-ID"

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
	msgUnknownUser   = "пользователь не найден"
)

// Auth определяет вызывающего по X-User-ID и его роль по базе пользователей.
// Роль из заголовков не принимается.
func Auth(users UserRepository, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(UserIDHeader)
			if raw == "" {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("Auth: invalid %s header %q", UserIDHeader, raw)
				handlers.RespondUnauthorized(w, msgInvalidUserID)
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, userRepo.ErrUserNotFound) {
					logger.Warn("Auth: unknown user id=%d", userID)
					handlers.RespondUnauthorized(w, msgUnknownUser)
					return
				}
				logger.Error("Auth: failed to load user id=%d: %v", userID, err)
				handlers.RespondInternalError(w)
				return
			}

			ctx := WithActor(r.Context(), domain.Actor{UserID: user.ID, Role: user.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
