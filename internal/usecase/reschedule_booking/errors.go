package reschedule_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("reschedule_booking: booking not found")

	// ErrForbidden возвращается, когда пользователь переносит чужое бронирование
	ErrForbidden = errors.New("reschedule_booking: access denied")

	// ErrNotReschedulable возвращается, когда статус бронирования не позволяет перенос
	ErrNotReschedulable = errors.New("reschedule_booking: booking cannot be rescheduled in its current status")

	// ErrRejected возвращается, когда валидатор отклонил новый интервал.
	// Причина доступна через errors.Is с ошибками пакета validator.
	ErrRejected = errors.New("reschedule_booking: booking rejected")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reschedule_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
