package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// Weekday is the symbolic day name stored with availability windows
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays in calendar order starting from Monday
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// WeekdayOf returns the weekday symbol of t in t's location
func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday().String())
}

// ParseWeekday accepts any letter case ("monday", "MONDAY")
func ParseWeekday(s string) (Weekday, error) {
	for _, d := range Weekdays {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWeekday, s)
}

// AvailabilityWindow is a recurring weekly interval during which a room may be booked.
// Windows of the same room and day may overlap.
type AvailabilityWindow struct {
	ID          int64
	RoomID      int64
	DayOfWeek   Weekday
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// On places the window on the calendar date of day in loc
func (w *AvailabilityWindow) On(day time.Time, loc *time.Location) (start, end time.Time) {
	return w.StartTime.On(day, loc), w.EndTime.On(day, loc)
}

// Contains checks window.start <= start and end <= window.end on start's date in loc.
// Both bounds are inclusive; an interval crossing midnight is never contained.
func (w *AvailabilityWindow) Contains(start, end time.Time, loc *time.Location) bool {
	windowStart, windowEnd := w.On(start, loc)
	return !start.Before(windowStart) && !end.After(windowEnd)
}

// Validate checks that the window is a non-empty interval on a known day
func (w *AvailabilityWindow) Validate() error {
	if _, err := ParseWeekday(string(w.DayOfWeek)); err != nil {
		return err
	}
	if err := w.StartTime.Validate(); err != nil {
		return err
	}
	if err := w.EndTime.Validate(); err != nil {
		return err
	}
	if !w.StartTime.IsBefore(w.EndTime) {
		return fmt.Errorf("%w: %s-%s", ErrEmptyWindow, w.StartTime, w.EndTime)
	}
	return nil
}

// OpenWindows drops windows flagged as unavailable
func OpenWindows(windows []*AvailabilityWindow) []*AvailabilityWindow {
	open := make([]*AvailabilityWindow, 0, len(windows))
	for _, w := range windows {
		if w.IsAvailable {
			open = append(open, w)
		}
	}
	return open
}
