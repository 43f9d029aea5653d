package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"room_id",
	"start_time",
	"end_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// LockRoom берет транзакционную advisory-блокировку комнаты.
// Все записи бронирований одной комнаты выстраиваются в очередь до конца транзакции,
// поэтому проверка пересечений и вставка не разрываются конкурентным запросом.
// Вне транзакции блокировка бессмысленна и не берется.
func (r *Repository) LockRoom(ctx context.Context, roomID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", roomID); err != nil {
		return classify(fmt.Errorf("%w: LockRoom - room_id=%d: %v", ErrExecQuery, roomID, err), err)
	}
	return nil
}

// HasActiveOverlap проверяет, есть ли у комнаты pending/approved бронирование,
// пересекающее [start, end) (строгие неравенства: касание концами не пересечение)
func (r *Repository) HasActiveOverlap(ctx context.Context, roomID int64, start, end time.Time, excludeID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	sub := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	if excludeID != nil {
		sub = sub.Where(squirrel.NotEq{"id": *excludeID})
	}

	subSQL, args, err := sub.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveOverlap - build query: %v", ErrBuildQuery, err)
	}

	var exists bool
	err = executor.QueryRowContext(ctx, "SELECT EXISTS ("+subSQL+")", args...).Scan(&exists)
	if err != nil {
		return false, classify(fmt.Errorf("%w: HasActiveOverlap - scan: %v", ErrScanRow, err), err)
	}

	return exists, nil
}

// Create создает новое бронирование.
// Нарушение exclusion-ограничения (пересечение активных бронирований) возвращается как ErrConflict.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns("user_id", "room_id", "start_time", "end_time", "status").
		Values(booking.UserID, booking.RoomID, booking.StartTime, booking.EndTime, booking.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, classify(fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err), err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, classify(fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err), err)
	}

	return booking, nil
}

// List получает бронирования по фильтру, отсортированные по времени начала
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		OrderBy("start_time ASC", "id ASC")

	if filter.RoomID != nil {
		builder = builder.Where(squirrel.Eq{"room_id": *filter.RoomID})
	}
	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.From != nil {
		builder = builder.Where(squirrel.Gt{"end_time": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"start_time": *filter.To})
	}

	// Конкретный статус важнее флага IncludeInactive
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		builder = builder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err), err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// UpdateStatus обновляет статус бронирования.
// Возврат отмененного бронирования в активный статус может нарушить exclusion-ограничение - ErrConflict.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.update(ctx, "UpdateStatus", id, map[string]interface{}{
		"status": status,
	})
}

// UpdateTimes переносит бронирование на новый интервал
func (r *Repository) UpdateTimes(ctx context.Context, id int64, start, end time.Time) error {
	return r.update(ctx, "UpdateTimes", id, map[string]interface{}{
		"start_time": start,
		"end_time":   end,
	})
}

func (r *Repository) update(ctx context.Context, op string, id int64, values map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		SetMap(values).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classify(fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err), err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete удаляет бронирование (физическое удаление, только для администратора)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.RoomID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// classify подменяет ошибку на ErrConflict для конфликтов, которые лечатся повтором
func classify(wrapped, cause error) error {
	switch {
	case pgerr.IsExclusionViolation(cause), pgerr.IsSerializationFailure(cause):
		return fmt.Errorf("%w: %v", ErrConflict, cause)
	case pgerr.IsForeignKeyViolation(cause):
		return fmt.Errorf("%w: %v", ErrReferenceNotFound, cause)
	default:
		return wrapped
	}
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
