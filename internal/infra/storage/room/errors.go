package room

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("room.repository: room not found")

	// ErrRoomTypeNotFound возвращается, когда тип комнаты не найден
	ErrRoomTypeNotFound = errors.New("room.repository: room type not found")

	// ErrRoomNumberTaken возвращается при повторном номере комнаты
	ErrRoomNumberTaken = errors.New("room.repository: room number already exists")

	// ErrRoomTypeNameTaken возвращается при повторном названии типа
	ErrRoomTypeNameTaken = errors.New("room.repository: room type name already exists")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("room.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("room.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("room.repository: failed to scan row")
)
