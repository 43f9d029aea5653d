package notifications

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// NotificationRepository интерфейс репозитория уведомлений и журнала действий
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	GetNotificationByID(ctx context.Context, id int64) (*domain.Notification, error)
	ListNotificationsByUser(ctx context.Context, userID int64) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	CreateActionLog(ctx context.Context, entry *domain.ActionLog) (*domain.ActionLog, error)
	ListActionLogs(ctx context.Context, limit, offset uint64) ([]*domain.ActionLog, error)
}

// Observer учитывает потерянные записи
type Observer interface {
	ObserveDispatchFailure(kind string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
