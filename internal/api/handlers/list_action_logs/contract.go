package list_action_logs

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/notifications/models"
)

type NotificationService interface {
	ListActionLogs(ctx context.Context, actor domain.Actor, limit, offset uint64) (*models.ActionLogListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
