package rooms

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("rooms.service: room not found")

	// ErrRoomTypeNotFound возвращается, когда тип комнаты не найден
	ErrRoomTypeNotFound = errors.New("rooms.service: room type not found")

	// ErrWindowNotFound возвращается, когда окно доступности не найдено
	ErrWindowNotFound = errors.New("rooms.service: availability window not found")

	// ErrRoomNumberTaken возвращается при повторном номере комнаты
	ErrRoomNumberTaken = errors.New("rooms.service: room number already exists")

	// ErrRoomTypeNameTaken возвращается при повторном названии типа комнаты
	ErrRoomTypeNameTaken = errors.New("rooms.service: room type name already exists")

	// ErrAccessDenied возвращается, когда операция доступна только администратору
	ErrAccessDenied = errors.New("rooms.service: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("rooms.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("rooms.service: internal error")
)
