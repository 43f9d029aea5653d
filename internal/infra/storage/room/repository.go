package room

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerr"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

var roomColumns = []string{
	"r.id",
	"r.room_number",
	"r.room_type_id",
	"r.capacity",
	"t.name",
}

// Repository репозиторий комнат и типов комнат
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория комнат
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectRooms() squirrel.SelectBuilder {
	return psqlbuilder.Select(roomColumns...).
		From("rooms r").
		Join("room_types t ON t.id = r.room_type_id")
}

// CreateRoom создает комнату
func (r *Repository) CreateRoom(ctx context.Context, room *domain.Room) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("rooms").
		Columns("room_number", "room_type_id", "capacity").
		Values(room.RoomNumber, room.RoomTypeID, room.Capacity).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRoom - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&room.ID)
	switch {
	case pgerr.IsUniqueViolation(err):
		return nil, ErrRoomNumberTaken
	case pgerr.IsForeignKeyViolation(err):
		return nil, ErrRoomTypeNotFound
	case err != nil:
		return nil, fmt.Errorf("%w: CreateRoom - execute insert: %v", ErrExecQuery, err)
	}

	return room, nil
}

// GetRoomByID получает комнату по ID вместе с названием типа
func (r *Repository) GetRoomByID(ctx context.Context, id int64) (*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectRooms().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomByID - build select query: %v", ErrBuildQuery, err)
	}

	room, err := scanRoom(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRoomByID - scan room: %v", ErrScanRow, err)
	}

	return room, nil
}

// ListRooms возвращает все комнаты, отсортированные по номеру
func (r *Repository) ListRooms(ctx context.Context) ([]*domain.Room, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectRooms().
		OrderBy("r.room_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRooms - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRooms - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rooms := make([]*domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListRooms - scan row: %v", ErrScanRow, err)
		}
		rooms = append(rooms, room)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRooms - rows error: %v", ErrScanRow, err)
	}

	return rooms, nil
}

// CreateRoomType создает тип комнаты
func (r *Repository) CreateRoomType(ctx context.Context, roomType *domain.RoomType) (*domain.RoomType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("room_types").
		Columns("name", "description").
		Values(roomType.Name, roomType.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRoomType - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&roomType.ID)
	if pgerr.IsUniqueViolation(err) {
		return nil, ErrRoomTypeNameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateRoomType - execute insert: %v", ErrExecQuery, err)
	}

	return roomType, nil
}

// ListRoomTypes возвращает все типы комнат
func (r *Repository) ListRoomTypes(ctx context.Context) ([]*domain.RoomType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "description").
		From("room_types").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRoomTypes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRoomTypes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	types := make([]*domain.RoomType, 0)
	for rows.Next() {
		var rt domain.RoomType
		var description sql.NullString
		if err := rows.Scan(&rt.ID, &rt.Name, &description); err != nil {
			return nil, fmt.Errorf("%w: ListRoomTypes - scan row: %v", ErrScanRow, err)
		}
		rt.Description = description.String
		types = append(types, &rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRoomTypes - rows error: %v", ErrScanRow, err)
	}

	return types, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRoom(row rowScanner) (*domain.Room, error) {
	var room domain.Room

	err := row.Scan(
		&room.ID,
		&room.RoomNumber,
		&room.RoomTypeID,
		&room.Capacity,
		&room.RoomTypeName,
	)
	if err != nil {
		return nil, err
	}

	return &room, nil
}
