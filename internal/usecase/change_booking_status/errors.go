package change_booking_status

import "errors"

var (
	// ErrForbidden возвращается, когда статус меняет не администратор
	ErrForbidden = errors.New("change_booking_status: only administrators can change booking status")

	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("change_booking_status: booking not found")

	// ErrOverlapsActiveBooking возвращается, когда возврат бронирования в активный статус
	// пересекается с другим активным бронированием той же комнаты
	ErrOverlapsActiveBooking = errors.New("change_booking_status: booking overlaps another active booking")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("change_booking_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("change_booking_status: internal error")
)
