package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrConflict возвращается, когда запись нарушила ограничение на пересечение активных бронирований
	// или транзакция проиграла конкурентной записи. Проверку можно повторить на свежих данных.
	ErrConflict = errors.New("booking.repository: conflicting booking write")

	// ErrReferenceNotFound возвращается, когда комната или пользователь не существуют
	ErrReferenceNotFound = errors.New("booking.repository: referenced room or user not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
