package availability

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

var windowColumns = []string{
	"id",
	"room_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_available",
}

// Дни недели хранятся строками, сортируем в календарном порядке
const weekdayOrder = "array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday']::text[], day_of_week::text)"

// Repository репозиторий окон доступности комнат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория окон доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByRoomAndDay возвращает все окна комнаты на день недели (включая недоступные),
// отсортированные по времени начала
func (r *Repository) GetByRoomAndDay(ctx context.Context, roomID int64, day domain.Weekday) ([]*domain.AvailabilityWindow, error) {
	return r.list(ctx, "GetByRoomAndDay", squirrel.Eq{"room_id": roomID, "day_of_week": string(day)})
}

// ListByRoom возвращает расписание комнаты на всю неделю
func (r *Repository) ListByRoom(ctx context.Context, roomID int64) ([]*domain.AvailabilityWindow, error) {
	return r.list(ctx, "ListByRoom", squirrel.Eq{"room_id": roomID})
}

func (r *Repository) list(ctx context.Context, op string, where squirrel.Eq) ([]*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(windowColumns...).
		From("availability").
		Where(where).
		OrderBy(weekdayOrder, "start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if pgerr.IsSerializationFailure(err) {
		return nil, fmt.Errorf("%w: %s: %v", ErrConflict, op, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		window, err := scanWindow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		windows = append(windows, window)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return windows, nil
}

// Create добавляет окно доступности. Пересечение с другими окнами той же комнаты допускается.
func (r *Repository) Create(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability").
		Columns("room_id", "day_of_week", "start_time", "end_time", "is_available").
		Values(window.RoomID, string(window.DayOfWeek), window.StartTime, window.EndTime, window.IsAvailable).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&window.ID)
	if pgerr.IsForeignKeyViolation(err) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return window, nil
}

// Delete удаляет окно доступности
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability").
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
		return ErrWindowNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWindow(row rowScanner) (*domain.AvailabilityWindow, error) {
	var window domain.AvailabilityWindow
	var day string

	err := row.Scan(
		&window.ID,
		&window.RoomID,
		&day,
		&window.StartTime,
		&window.EndTime,
		&window.IsAvailable,
	)
	if err != nil {
		return nil, err
	}

	window.DayOfWeek, err = domain.ParseWeekday(day)
	if err != nil {
		return nil, err
	}

	return &window, nil
}
