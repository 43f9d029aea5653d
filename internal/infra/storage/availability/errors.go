package availability

import "errors"

var (
	// ErrWindowNotFound возвращается, когда окно доступности не найдено
	ErrWindowNotFound = errors.New("availability.repository: window not found")

	// ErrRoomNotFound возвращается, когда окно создается для несуществующей комнаты
	ErrRoomNotFound = errors.New("availability.repository: room not found")

	// ErrConflict возвращается при конфликте сериализации: чтение стоит повторить в новой транзакции
	ErrConflict = errors.New("availability.repository: serialization conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
