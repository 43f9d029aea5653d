package validator

import "errors"

var (
	// ErrInvalidRange начало бронирования не раньше его конца
	ErrInvalidRange = errors.New("validator: start time must be before end time")

	// ErrPastStart бронирование начинается или заканчивается в прошлом
	ErrPastStart = errors.New("validator: booking cannot start in the past")

	// ErrNoAvailabilityOnDay у комнаты нет открытых окон в этот день недели
	ErrNoAvailabilityOnDay = errors.New("validator: room has no availability on this day")

	// ErrOutsideAvailabilityWindow интервал не помещается целиком ни в одно окно
	ErrOutsideAvailabilityWindow = errors.New("validator: booking is outside the room availability windows")

	// ErrOverlapsExistingBooking пересечение с активным бронированием
	ErrOverlapsExistingBooking = errors.New("validator: booking overlaps an existing booking")

	// ErrSource ошибка чтения окон доступности или бронирований
	ErrSource = errors.New("validator: failed to read booking data")
)
