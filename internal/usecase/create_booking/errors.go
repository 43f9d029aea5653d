package create_booking

import "errors"

var (
	// ErrRoomNotFound возвращается, когда комната не найдена
	ErrRoomNotFound = errors.New("create_booking: room not found")

	// ErrUserNotFound возвращается, когда владелец бронирования не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrRejected возвращается, когда валидатор отклонил бронирование.
	// Причина доступна через errors.Is с ошибками пакета validator.
	ErrRejected = errors.New("create_booking: booking rejected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
