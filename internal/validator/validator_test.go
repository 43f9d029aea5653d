package validator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

const roomR = int64(1)

// memoryStore хранит окна и бронирования в памяти и реализует оба источника
type memoryStore struct {
	windows  []*domain.AvailabilityWindow
	bookings []*domain.Booking

	availabilityErr error
	bookingsErr     error
	overlapCalls    int
}

func (s *memoryStore) GetByRoomAndDay(_ context.Context, roomID int64, day domain.Weekday) ([]*domain.AvailabilityWindow, error) {
	if s.availabilityErr != nil {
		return nil, s.availabilityErr
	}
	var out []*domain.AvailabilityWindow
	for _, w := range s.windows {
		if w.RoomID == roomID && w.DayOfWeek == day {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *memoryStore) HasActiveOverlap(_ context.Context, roomID int64, start, end time.Time, excludeID *int64) (bool, error) {
	s.overlapCalls++
	if s.bookingsErr != nil {
		return false, s.bookingsErr
	}
	for _, b := range s.bookings {
		if b.RoomID != roomID || !b.IsActive() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) window(day domain.Weekday, from, to string) *memoryStore {
	s.windows = append(s.windows, &domain.AvailabilityWindow{
		ID:          int64(len(s.windows) + 1),
		RoomID:      roomR,
		DayOfWeek:   day,
		StartTime:   types.MustTimeString(from),
		EndTime:     types.MustTimeString(to),
		IsAvailable: true,
	})
	return s
}

func (s *memoryStore) book(c Candidate, status domain.BookingStatus) {
	s.bookings = append(s.bookings, &domain.Booking{
		ID:        int64(len(s.bookings) + 1),
		RoomID:    c.RoomID,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		Status:    status,
	})
}

// Понедельник 10 марта 2025, "сейчас" - утро воскресенья перед ним
var (
	monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	now    = time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC)
)

func at(day time.Time, hhmm string) time.Time {
	return types.MustTimeString(hhmm).On(day, time.UTC)
}

func candidate(day time.Time, from, to string) Candidate {
	return Candidate{RoomID: roomR, StartTime: at(day, from), EndTime: at(day, to)}
}

func validate(t *testing.T, v *Validator, c Candidate) Verdict {
	t.Helper()
	verdict, err := v.Validate(context.Background(), c, now)
	require.NoError(t, err)
	return verdict
}

func TestValidate_MondayScenario(t *testing.T) {
	store := (&memoryStore{}).window(domain.Monday, "09:00", "12:00")
	v := New(store, store, time.UTC)

	first := candidate(monday, "10:00", "11:00")
	require.True(t, validate(t, v, first).Accepted())
	store.book(first, domain.StatusPending)

	second := candidate(monday, "10:30", "10:45")
	assert.Equal(t, ReasonOverlapsExistingBooking, validate(t, v, second).Reason())

	third := candidate(monday, "11:00", "11:30")
	assert.True(t, validate(t, v, third).Accepted(), "touching endpoints must not conflict")
}

func TestValidate_NoTuesdayWindow(t *testing.T) {
	store := (&memoryStore{}).window(domain.Monday, "09:00", "12:00")
	v := New(store, store, time.UTC)

	tuesday := monday.AddDate(0, 0, 1)

	assert.Equal(t, ReasonNoAvailabilityOnDay, validate(t, v, candidate(tuesday, "10:00", "11:00")).Reason())
}

func TestValidate_PartialContainment(t *testing.T) {
	store := (&memoryStore{}).window(domain.Monday, "09:00", "12:00")
	v := New(store, store, time.UTC)

	assert.Equal(t, ReasonOutsideAvailabilityWindow, validate(t, v, candidate(monday, "11:30", "12:30")).Reason())
}

func TestValidate_ExactWindowBounds(t *testing.T) {
	store := (&memoryStore{}).window(domain.Monday, "09:00", "12:00")
	v := New(store, store, time.UTC)

	assert.True(t, validate(t, v, candidate(monday, "09:00", "12:00")).Accepted())
}

func TestValidate_AdjacentWindowsDoNotMerge(t *testing.T) {
	store := (&memoryStore{}).
		window(domain.Monday, "09:00", "10:00").
		window(domain.Monday, "10:00", "11:00")
	v := New(store, store, time.UTC)

	assert.Equal(t, ReasonOutsideAvailabilityWindow, validate(t, v, candidate(monday, "09:30", "10:30")).Reason())
	assert.True(t, validate(t, v, candidate(monday, "10:00", "11:00")).Accepted())
}

func TestValidate_OverlappingWindowsTolerated(t *testing.T) {
	store := (&memoryStore{}).
		window(domain.Monday, "09:00", "12:00").
		window(domain.Monday, "10:00", "14:00")
	v := New(store, store, time.UTC)

	assert.True(t, validate(t, v, candidate(monday, "11:00", "13:30")).Accepted())
}

func TestValidate_UnavailableWindowIgnored(t *testing.T) {
	store := (&memoryStore{}).window(domain.Monday, "09:00", "12:00")
	store.windows[0].IsAvailable = false
	v := New(store, store, time.UTC)

	assert.Equal(t, ReasonNoAvailabilityOnDay, validate(t, v, candidate(monday, "10:00", "11:00")).Reason())
}

func TestValidate_InvalidRange(t *testing.T) {
	store := (&memoryStore{}).window(domain.Monday, "09:00", "12:00")
	v := New(store, store, time.UTC)

	for _, c := range []Candidate{
		candidate(monday, "11:00", "10:00"),
		candidate(monday, "10:00", "10:00"),
		// прошлое и вне окна - но диапазон проверяется первым
		{RoomID: roomR, StartTime: now.Add(-time.Hour), EndTime: now.Add(-2 * time.Hour)},
	} {
		assert.Equal(t, ReasonInvalidRange, validate(t, v, c).Reason())
	}
	assert.Zero(t, store.overlapCalls)
}

func TestValidate_PastStartBeatsEverythingElse(t *testing.T) {
	store := (&memoryStore{}).window(domain.Monday, "09:00", "12:00")
	v := New(store, store, time.UTC)

	lastMonday := monday.AddDate(0, 0, -7)
	past := candidate(lastMonday, "10:00", "11:00")
	store.book(past, domain.StatusApproved)

	assert.Equal(t, ReasonPastStart, validate(t, v, past).Reason())

	// нет окна и начало в прошлом
	startedAnHourAgo := Candidate{RoomID: roomR, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)}
	assert.Equal(t, ReasonPastStart, validate(t, v, startedAnHourAgo).Reason())
}

func TestValidate_StartExactlyNowAllowed(t *testing.T) {
	sunday := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	store := (&memoryStore{}).window(domain.Sunday, "08:00", "10:00")
	v := New(store, store, time.UTC)

	assert.True(t, validate(t, v, candidate(sunday, "08:00", "09:00")).Accepted())
}

func TestValidate_InactiveBookingsNeverBlock(t *testing.T) {
	store := (&memoryStore{}).window(domain.Monday, "09:00", "12:00")
	v := New(store, store, time.UTC)

	slot := candidate(monday, "10:00", "11:00")
	store.book(slot, domain.StatusCancelled)
	store.book(slot, domain.StatusCompleted)

	assert.True(t, validate(t, v, slot).Accepted())

	store.book(slot, domain.StatusApproved)
	assert.Equal(t, ReasonOverlapsExistingBooking, validate(t, v, slot).Reason())
}

func TestValidate_ExcludesRescheduledBooking(t *testing.T) {
	store := (&memoryStore{}).window(domain.Monday, "09:00", "12:00")
	v := New(store, store, time.UTC)

	store.book(candidate(monday, "10:00", "11:00"), domain.StatusPending)

	moved := candidate(monday, "10:30", "11:30")
	assert.Equal(t, ReasonOverlapsExistingBooking, validate(t, v, moved).Reason())

	id := store.bookings[0].ID
	moved.ExcludeBookingID = &id
	assert.True(t, validate(t, v, moved).Accepted())
}

func TestValidate_OtherRoomDoesNotBlock(t *testing.T) {
	store := (&memoryStore{}).window(domain.Monday, "09:00", "12:00")
	v := New(store, store, time.UTC)

	other := candidate(monday, "10:00", "11:00")
	other.RoomID = 2
	store.book(other, domain.StatusApproved)

	assert.True(t, validate(t, v, candidate(monday, "10:00", "11:00")).Accepted())
}

func TestValidate_UsesConfiguredLocation(t *testing.T) {
	msk := time.FixedZone("UTC+3", 3*60*60)
	store := (&memoryStore{}).window(domain.Tuesday, "01:00", "04:00")
	v := New(store, store, msk)

	// Понедельник 23:00 UTC = вторник 02:00 по UTC+3
	c := Candidate{
		RoomID:    roomR,
		StartTime: time.Date(2025, 3, 10, 23, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC),
	}

	assert.True(t, validate(t, v, c).Accepted())
	assert.Equal(t, msk, v.Location())
}

func TestValidate_CrossingMidnightIsOutside(t *testing.T) {
	store := (&memoryStore{}).window(domain.Monday, "20:00", "23:59")
	v := New(store, store, time.UTC)

	c := Candidate{RoomID: roomR, StartTime: at(monday, "22:00"), EndTime: at(monday.AddDate(0, 0, 1), "01:00")}

	assert.Equal(t, ReasonOutsideAvailabilityWindow, validate(t, v, c).Reason())
}

func TestValidate_SourceErrors(t *testing.T) {
	store := (&memoryStore{availabilityErr: assert.AnError}).window(domain.Monday, "09:00", "12:00")
	v := New(store, store, time.UTC)

	_, err := v.Validate(context.Background(), candidate(monday, "10:00", "11:00"), now)
	assert.ErrorIs(t, err, ErrSource)

	store.availabilityErr = nil
	store.bookingsErr = assert.AnError

	_, err = v.Validate(context.Background(), candidate(monday, "10:00", "11:00"), now)
	assert.ErrorIs(t, err, ErrSource)
}

func TestValidate_SourceErrorKeepsCause(t *testing.T) {
	conflict := errors.New("could not serialize access")
	store := (&memoryStore{bookingsErr: conflict}).window(domain.Monday, "09:00", "12:00")
	v := New(store, store, time.UTC)

	_, err := v.Validate(context.Background(), candidate(monday, "10:00", "11:00"), now)
	assert.ErrorIs(t, err, ErrSource)
	assert.ErrorIs(t, err, conflict)
}

func TestValidate_InactiveCandidateSkipsOverlap(t *testing.T) {
	store := (&memoryStore{}).window(domain.Monday, "09:00", "12:00")
	v := New(store, store, time.UTC)

	slot := candidate(monday, "10:00", "11:00")
	store.book(slot, domain.StatusApproved)

	slot.Inactive = true
	assert.True(t, validate(t, v, slot).Accepted())
	assert.Zero(t, store.overlapCalls)

	// Окна доступности проверяются и для неактивных
	outside := candidate(monday, "11:30", "12:30")
	outside.Inactive = true
	assert.Equal(t, ReasonOutsideAvailabilityWindow, validate(t, v, outside).Reason())
}

func TestNew_DefaultsToUTC(t *testing.T) {
	v := New(&memoryStore{}, &memoryStore{}, nil)
	assert.Equal(t, time.UTC, v.Location())
}

func TestVerdict(t *testing.T) {
	accept := Accept()
	assert.True(t, accept.Accepted())
	assert.NoError(t, accept.Err())
	assert.Equal(t, "accept", accept.String())
	assert.True(t, Verdict{}.Accepted())

	for reason, sentinel := range reasonErrors {
		verdict := Reject(reason)
		assert.False(t, verdict.Accepted())
		assert.Equal(t, reason, verdict.Reason())
		assert.ErrorIs(t, verdict.Err(), sentinel)
		assert.Equal(t, string(reason), verdict.String())
	}
}

// Свойство: при start >= end результат всегда InvalidRange, независимо от остального
func TestCheckRange_Property(t *testing.T) {
	base := monday.Add(10 * time.Hour)
	for delta := -3 * time.Hour; delta <= 0; delta += 15 * time.Minute {
		assert.Equal(t, ReasonInvalidRange, CheckRange(base, base.Add(delta)).Reason(), "delta=%s", delta)
	}
	assert.True(t, CheckRange(base, base.Add(time.Nanosecond)).Accepted())
}

// Свойство: любые два пересекающихся активных бронирования - второй получает отказ
func TestValidate_OverlapProperty(t *testing.T) {
	slots := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30", "12:00"}

	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			for k := 0; k < len(slots); k++ {
				for l := k + 1; l < len(slots); l++ {
					store := (&memoryStore{}).window(domain.Monday, "09:00", "12:00")
					v := New(store, store, time.UTC)

					a := candidate(monday, slots[i], slots[j])
					b := candidate(monday, slots[k], slots[l])

					require.True(t, validate(t, v, a).Accepted())
					store.book(a, domain.StatusApproved)

					overlap := a.StartTime.Before(b.EndTime) && b.StartTime.Before(a.EndTime)
					got := validate(t, v, b)
					if overlap {
						assert.Equal(t, ReasonOverlapsExistingBooking, got.Reason(), "%v vs %v", a, b)
					} else {
						assert.True(t, got.Accepted(), "%v vs %v", a, b)
					}
				}
			}
		}
	}
}
