package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

var notificationColumns = []string{
	"id",
	"user_id",
	"booking_id",
	"message",
	"status",
	"created_at",
}

// Repository репозиторий уведомлений и журнала действий
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория уведомлений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateNotification сохраняет уведомление
func (r *Repository) CreateNotification(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	status := n.Status
	if status == "" {
		status = domain.NotificationUnread
	}

	query, args, err := psqlbuilder.Insert("notifications").
		Columns("user_id", "booking_id", "message", "status").
		Values(n.UserID, n.BookingID, n.Message, status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateNotification - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&n.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateNotification - execute insert: %v", ErrExecQuery, err)
	}
	n.Status = status
	n.CreatedAt = createdAt.Time

	return n, nil
}

// GetNotificationByID получает уведомление по ID
func (r *Repository) GetNotificationByID(ctx context.Context, id int64) (*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetNotificationByID - build select query: %v", ErrBuildQuery, err)
	}

	n, err := scanNotification(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetNotificationByID - scan: %v", ErrScanRow, err)
	}

	return n, nil
}

// ListNotificationsByUser возвращает уведомления пользователя, новые первыми
func (r *Repository) ListNotificationsByUser(ctx context.Context, userID int64) ([]*domain.Notification, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListNotificationsByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListNotificationsByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	notifications := make([]*domain.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListNotificationsByUser - scan row: %v", ErrScanRow, err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListNotificationsByUser - rows error: %v", ErrScanRow, err)
	}

	return notifications, nil
}

// MarkRead помечает уведомление прочитанным
func (r *Repository) MarkRead(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("notifications").
		Set("status", domain.NotificationRead).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRead - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// CreateActionLog сохраняет запись журнала действий
func (r *Repository) CreateActionLog(ctx context.Context, entry *domain.ActionLog) (*domain.ActionLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("action_logs").
		Columns("user_id", "action").
		Values(entry.UserID, entry.Action).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateActionLog - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt); err != nil {
		return nil, fmt.Errorf("%w: CreateActionLog - execute insert: %v", ErrExecQuery, err)
	}
	entry.CreatedAt = createdAt.Time

	return entry, nil
}

// ListActionLogs возвращает журнал действий, новые записи первыми
func (r *Repository) ListActionLogs(ctx context.Context, limit, offset uint64) ([]*domain.ActionLog, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id", "user_id", "action", "created_at").
		From("action_logs").
		OrderBy("created_at DESC", "id DESC").
		Offset(offset)
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActionLogs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActionLogs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	logs := make([]*domain.ActionLog, 0)
	for rows.Next() {
		var entry domain.ActionLog
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListActionLogs - scan row: %v", ErrScanRow, err)
		}
		logs = append(logs, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActionLogs - rows error: %v", ErrScanRow, err)
	}

	return logs, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var n domain.Notification
	var bookingID sql.NullInt64
	var status string

	err := row.Scan(
		&n.ID,
		&n.UserID,
		&bookingID,
		&n.Message,
		&status,
		&n.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if bookingID.Valid {
		id := bookingID.Int64
		n.BookingID = &id
	}
	n.Status = domain.NotificationStatus(status)

	return &n, nil
}
