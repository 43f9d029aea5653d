package domain

import "errors"

var (
	// ErrUnknownStatus is returned for a booking status outside the known set
	ErrUnknownStatus = errors.New("domain: unknown booking status")

	// ErrUnknownWeekday is returned for a day name that is not Monday..Sunday
	ErrUnknownWeekday = errors.New("domain: unknown weekday")

	// ErrUnknownRole is returned for a role other than admin or user
	ErrUnknownRole = errors.New("domain: unknown role")

	// ErrEmptyWindow is returned when an availability window does not start before it ends
	ErrEmptyWindow = errors.New("domain: availability window start must be before end")
)
