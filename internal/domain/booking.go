package domain

import (
	"fmt"
	"time"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusApproved  BookingStatus = "approved"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking represents a room reservation for an absolute time range
type Booking struct {
	ID        int64
	UserID    int64
	RoomID    int64
	StartTime time.Time
	EndTime   time.Time
	Status    BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ParseBookingStatus converts a raw value into a known status
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// IsValid returns true for the four statuses the system knows
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsActive returns true if a booking in this status blocks overlapping bookings
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

// CanTransition reports whether the guarded (non-admin) state machine allows from -> to.
// Administrators bypass this check on purpose, see change_booking_status.
func CanTransition(from, to BookingStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

var transitions = map[BookingStatus][]BookingStatus{
	StatusPending:  {StatusApproved, StatusCancelled},
	StatusApproved: {StatusCancelled, StatusCompleted},
}

// IsActive returns true if the booking blocks overlapping bookings
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// CanBeCancelled returns true if the owner may cancel the booking
func (b *Booking) CanBeCancelled() bool {
	return CanTransition(b.Status, StatusCancelled)
}

// CanBeRescheduledBy returns true if the actor may move the booking to another time range
func (b *Booking) CanBeRescheduledBy(actor Actor) bool {
	if actor.IsAdmin() {
		return b.IsActive()
	}
	return b.UserID == actor.UserID && b.Status == StatusPending
}

// Overlaps uses half-open ranges: touching endpoints do not overlap
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

// BookingsFilter фильтр для выборки бронирований
type BookingsFilter struct {
	RoomID          *int64         // Фильтр по комнате
	UserID          *int64         // Фильтр по владельцу
	Status          *BookingStatus // Конкретный статус (имеет приоритет над IncludeInactive)
	From            *time.Time     // Бронирования, заканчивающиеся после From
	To              *time.Time     // Бронирования, начинающиеся до To
	IncludeInactive bool           // Включать отмененные и завершенные
}
