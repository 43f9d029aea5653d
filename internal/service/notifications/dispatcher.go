package notifications

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Метки для метрики потерянных записей
const (
	kindNotification = "notification"
	kindActionLog    = "action_log"
)

// Dispatcher сохраняет уведомления и записи аудита после фиксации изменения бронирования.
// Каждая запись сохраняется отдельно; ошибка одной не мешает остальным и не возвращается вызывающему.
type Dispatcher struct {
	repo     NotificationRepository
	observer Observer
	logger   Logger
}

// NewDispatcher создает диспетчер событий бронирования
func NewDispatcher(repo NotificationRepository, observer Observer, logger Logger) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		observer: observer,
		logger:   logger,
	}
}

// Dispatch доставляет события. Возвращает число сохраненных записей.
func (d *Dispatcher) Dispatch(ctx context.Context, events domain.BookingEvents) int {
	if events.IsEmpty() {
		return 0
	}

	delivered := 0

	for i := range events.Notifications {
		n := events.Notifications[i]
		if n.Status == "" {
			n.Status = domain.NotificationUnread
		}
		if _, err := d.repo.CreateNotification(ctx, &n); err != nil {
			d.logger.Error("Dispatch: failed to store notification for user=%d: %v", n.UserID, err)
			d.observer.ObserveDispatchFailure(kindNotification)
			continue
		}
		delivered++
	}

	for i := range events.ActionLogs {
		entry := events.ActionLogs[i]
		if _, err := d.repo.CreateActionLog(ctx, &entry); err != nil {
			d.logger.Error("Dispatch: failed to store action log %q: %v", entry.Action, err)
			d.observer.ObserveDispatchFailure(kindActionLog)
			continue
		}
		delivered++
	}

	if total := len(events.Notifications) + len(events.ActionLogs); delivered < total {
		d.logger.Warn("Dispatch: stored %d of %d records", delivered, total)
	}

	return delivered
}
