package notifications

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	notificationRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/notifications/models"
)

// DefaultActionLogLimit размер страницы журнала, если limit не указан
const DefaultActionLogLimit = 100

// Service чтение уведомлений и журнала действий
type Service struct {
	repo   NotificationRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(repo NotificationRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListForUser уведомления пользователя, новые первыми. Видит только сам пользователь.
func (s *Service) ListForUser(ctx context.Context, actor domain.Actor, userID int64) (*models.NotificationListResponse, error) {
	if actor.UserID != userID {
		s.logger.Warn("ListNotifications: user=%d requested notifications of user=%d", actor.UserID, userID)
		return nil, ErrAccessDenied
	}

	items, err := s.repo.ListNotificationsByUser(ctx, userID)
	if err != nil {
		s.logger.Error("ListNotifications: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListNotifications - repository error: %v", ErrInternal, err)
	}

	resp := &models.NotificationListResponse{Notifications: make([]models.NotificationResponse, 0, len(items))}
	for _, n := range items {
		if n.Status == domain.NotificationUnread {
			resp.Unread++
		}
		resp.Notifications = append(resp.Notifications, models.FromDomainNotification(n))
	}
	return resp, nil
}

// MarkRead помечает уведомление прочитанным. Только получатель.
func (s *Service) MarkRead(ctx context.Context, actor domain.Actor, id int64) error {
	n, err := s.repo.GetNotificationByID(ctx, id)
	if err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	if n.UserID != actor.UserID {
		s.logger.Warn("MarkRead: user=%d is not the recipient of notification id=%d", actor.UserID, id)
		return ErrAccessDenied
	}

	if n.Status == domain.NotificationRead {
		return nil
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: failed to update notification id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}

	return nil
}

// ListActionLogs страница журнала действий. Только для администратора.
func (s *Service) ListActionLogs(ctx context.Context, actor domain.Actor, limit, offset uint64) (*models.ActionLogListResponse, error) {
	if !actor.IsAdmin() {
		s.logger.Warn("ListActionLogs: user=%d is not an administrator", actor.UserID)
		return nil, ErrAccessDenied
	}

	if limit == 0 {
		limit = DefaultActionLogLimit
	}

	entries, err := s.repo.ListActionLogs(ctx, limit, offset)
	if err != nil {
		s.logger.Error("ListActionLogs: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActionLogs - repository error: %v", ErrInternal, err)
	}

	resp := &models.ActionLogListResponse{
		Entries: make([]models.ActionLogResponse, 0, len(entries)),
		Limit:   limit,
		Offset:  offset,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, models.FromDomainActionLog(e))
	}
	return resp, nil
}
