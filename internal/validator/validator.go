// Package validator decides whether a room booking may be accepted.
//
// The checks run in a fixed order and stop at the first failure:
//
//  1. start < end                                  -> InvalidRange
//  2. start >= now and end >= now                  -> PastStart
//  3. open windows exist on the weekday of start   -> NoAvailabilityOnDay
//  4. one window fully contains [start, end]       -> OutsideAvailabilityWindow
//  5. no pending/approved booking overlaps it      -> OverlapsExistingBooking
//     (skipped for candidates created in an inactive status)
//
// Weekday and time of day are taken in a single configured location.
package validator

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Candidate бронирование, которое проверяется перед сохранением
type Candidate struct {
	RoomID    int64
	StartTime time.Time
	EndTime   time.Time

	// ExcludeBookingID при переносе существующего бронирования оно не должно конфликтовать само с собой
	ExcludeBookingID *int64

	// Inactive бронирование создается сразу в cancelled/completed и комнату не занимает
	Inactive bool
}

// Validator проверка доступности комнаты и конфликтов бронирований
type Validator struct {
	availability AvailabilitySource
	bookings     BookingSource
	location     *time.Location
}

// New создает валидатор. loc - часовой пояс, в котором заданы окна доступности.
func New(availability AvailabilitySource, bookings BookingSource, loc *time.Location) *Validator {
	if loc == nil {
		loc = time.UTC
	}
	return &Validator{
		availability: availability,
		bookings:     bookings,
		location:     loc,
	}
}

// Location часовой пояс окон доступности
func (v *Validator) Location() *time.Location {
	return v.location
}

// Validate проверяет кандидата. Отказ возвращается как Verdict, error - только ошибки чтения данных.
func (v *Validator) Validate(ctx context.Context, c Candidate, now time.Time) (Verdict, error) {
	start := c.StartTime.In(v.location)
	end := c.EndTime.In(v.location)

	if verdict := CheckRange(start, end); !verdict.Accepted() {
		return verdict, nil
	}

	if verdict := CheckNotPast(start, end, now); !verdict.Accepted() {
		return verdict, nil
	}

	day := domain.WeekdayOf(start)
	windows, err := v.availability.GetByRoomAndDay(ctx, c.RoomID, day)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: availability room=%d day=%s: %w", ErrSource, c.RoomID, day, err)
	}

	if verdict := CheckContainment(domain.OpenWindows(windows), start, end, v.location); !verdict.Accepted() {
		return verdict, nil
	}

	if c.Inactive {
		return Accept(), nil
	}

	overlaps, err := v.bookings.HasActiveOverlap(ctx, c.RoomID, start, end, c.ExcludeBookingID)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: bookings room=%d: %w", ErrSource, c.RoomID, err)
	}
	if overlaps {
		return Reject(ReasonOverlapsExistingBooking), nil
	}

	return Accept(), nil
}

// CheckRange start должен быть строго раньше end
func CheckRange(start, end time.Time) Verdict {
	if !start.Before(end) {
		return Reject(ReasonInvalidRange)
	}
	return Accept()
}

// CheckNotPast оба конца интервала не раньше now
func CheckNotPast(start, end, now time.Time) Verdict {
	if start.Before(now) || end.Before(now) {
		return Reject(ReasonPastStart)
	}
	return Accept()
}

// CheckContainment интервал должен целиком лежать хотя бы в одном окне.
// Соседние окна не склеиваются: 09:00-10:00 + 10:00-11:00 не покрывают 09:30-10:30.
func CheckContainment(windows []*domain.AvailabilityWindow, start, end time.Time, loc *time.Location) Verdict {
	if len(windows) == 0 {
		return Reject(ReasonNoAvailabilityOnDay)
	}
	for _, w := range windows {
		if w.Contains(start, end, loc) {
			return Accept()
		}
	}
	return Reject(ReasonOutsideAvailabilityWindow)
}
