package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/logger"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]*domain.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockBookingRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) ListAdminIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]int64), args.Error(1)
	}
	return nil, args.Error(1)
}

type txStub struct{}

func (txStub) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var (
	admin   = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	owner   = domain.Actor{UserID: 7, Role: domain.RoleUser}
	another = domain.Actor{UserID: 8, Role: domain.RoleUser}
)

func newService() (*Service, *mockBookingRepo, *mockUserRepo) {
	bookings := &mockBookingRepo{}
	users := &mockUserRepo{}
	return NewService(bookings, users, txStub{}, time.UTC, logger.NewNop()), bookings, users
}

func booking(id int64, status domain.BookingStatus, start, end time.Time) *domain.Booking {
	return &domain.Booking{ID: id, UserID: 7, RoomID: 3, StartTime: start, EndTime: end, Status: status}
}

func day(d, hour int) time.Time {
	return time.Date(2025, time.March, d, hour, 0, 0, 0, time.UTC)
}

func TestGetByID(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		svc, bookings, _ := newService()
		bookings.On("GetByID", mock.Anything, int64(42)).Return(booking(42, domain.StatusPending, day(10, 9), day(10, 10)), nil)

		resp, err := svc.GetByID(context.Background(), 42, owner)
		require.NoError(t, err)
		assert.Equal(t, int64(42), resp.ID)
		assert.Equal(t, "pending", resp.Status)
	})

	t.Run("admin", func(t *testing.T) {
		svc, bookings, _ := newService()
		bookings.On("GetByID", mock.Anything, int64(42)).Return(booking(42, domain.StatusPending, day(10, 9), day(10, 10)), nil)

		_, err := svc.GetByID(context.Background(), 42, admin)
		assert.NoError(t, err)
	})

	t.Run("other user", func(t *testing.T) {
		svc, bookings, _ := newService()
		bookings.On("GetByID", mock.Anything, int64(42)).Return(booking(42, domain.StatusPending, day(10, 9), day(10, 10)), nil)

		_, err := svc.GetByID(context.Background(), 42, another)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc, bookings, _ := newService()
		bookings.On("GetByID", mock.Anything, int64(42)).Return(nil, bookingRepo.ErrBookingNotFound)

		_, err := svc.GetByID(context.Background(), 42, admin)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})

	t.Run("repository failure", func(t *testing.T) {
		svc, bookings, _ := newService()
		bookings.On("GetByID", mock.Anything, int64(42)).Return(nil, errors.New("boom"))

		_, err := svc.GetByID(context.Background(), 42, admin)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestGetUserBookings_GroupsByDay(t *testing.T) {
	svc, bookings, _ := newService()
	svc.timeProvider = fixedTime{now: day(10, 12)}

	bookings.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
		return f.UserID != nil && *f.UserID == 7 && f.IncludeInactive
	})).Return([]*domain.Booking{
		booking(1, domain.StatusCompleted, day(8, 9), day(8, 10)),
		// Закончилось сегодня в полночь - относится к сегодняшнему дню
		booking(2, domain.StatusApproved, day(9, 23), day(10, 0)),
		booking(3, domain.StatusCancelled, day(10, 9), day(10, 10)),
		booking(4, domain.StatusPending, day(10, 18), day(10, 19)),
		booking(5, domain.StatusPending, day(11, 0), day(11, 1)),
	}, nil)

	resp, err := svc.GetUserBookings(context.Background(), 7, owner)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, []int64{1}, ids(resp.Past))
	assert.Equal(t, []int64{2, 3, 4}, ids(resp.Today))
	assert.Equal(t, []int64{5}, ids(resp.Future))
}

func TestGetUserBookings_UsesConfiguredLocation(t *testing.T) {
	msk := time.FixedZone("UTC+3", 3*60*60)
	bookings := &mockBookingRepo{}
	svc := NewService(bookings, &mockUserRepo{}, txStub{}, msk, logger.NewNop())
	// 22:00 UTC = 01:00 следующего дня в UTC+3
	svc.timeProvider = fixedTime{now: day(10, 22)}

	bookings.On("List", mock.Anything, mock.Anything).Return([]*domain.Booking{
		booking(1, domain.StatusPending, day(10, 10), day(10, 11)),
	}, nil)

	resp, err := svc.GetUserBookings(context.Background(), 7, owner)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-11", resp.Date)
	assert.Equal(t, []int64{1}, ids(resp.Past))
	assert.Empty(t, resp.Today)
}

func TestGetUserBookings_AccessDenied(t *testing.T) {
	svc, bookings, _ := newService()

	_, err := svc.GetUserBookings(context.Background(), 7, another)
	assert.ErrorIs(t, err, ErrAccessDenied)
	bookings.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListBookings(t *testing.T) {
	t.Run("admin with filters", func(t *testing.T) {
		svc, bookings, _ := newService()
		bookings.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingsFilter) bool {
			return *f.RoomID == 3 && *f.Status == domain.StatusApproved
		})).Return([]*domain.Booking{booking(1, domain.StatusApproved, day(10, 9), day(10, 10))}, nil)

		resp, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{
			Actor:  admin,
			RoomID: ptr.Ptr(int64(3)),
			Status: ptr.Ptr("approved"),
		})
		require.NoError(t, err)
		assert.Len(t, resp.Bookings, 1)
	})

	t.Run("non admin", func(t *testing.T) {
		svc, _, _ := newService()
		_, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{Actor: owner})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown status", func(t *testing.T) {
		svc, _, _ := newService()
		_, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{
			Actor:  admin,
			Status: ptr.Ptr("archived"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("inverted range", func(t *testing.T) {
		svc, _, _ := newService()
		from, to := day(11, 0), day(10, 0)
		_, err := svc.ListBookings(context.Background(), &models.ListBookingsRequest{
			Actor: admin,
			From:  &from,
			To:    &to,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels pending", func(t *testing.T) {
		svc, bookings, users := newService()
		bookings.On("GetByID", mock.Anything, int64(42)).Return(booking(42, domain.StatusPending, day(10, 9), day(10, 10)), nil)
		bookings.On("UpdateStatus", mock.Anything, int64(42), domain.StatusCancelled).Return(nil)
		users.On("ListAdminIDs", mock.Anything).Return([]int64{1}, nil)

		resp, events, err := svc.Cancel(context.Background(), 42, owner)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)

		require.Len(t, events.Notifications, 2)
		assert.Equal(t, "Booking 42 status updated to cancelled.", events.Notifications[0].Message)
		assert.Equal(t, int64(7), events.Notifications[0].UserID)
		assert.Equal(t, int64(1), events.Notifications[1].UserID)
		require.Len(t, events.ActionLogs, 1)
		assert.Equal(t, int64(7), events.ActionLogs[0].UserID)
	})

	t.Run("admin list failure notifies owner only", func(t *testing.T) {
		svc, bookings, users := newService()
		bookings.On("GetByID", mock.Anything, int64(42)).Return(booking(42, domain.StatusApproved, day(10, 9), day(10, 10)), nil)
		bookings.On("UpdateStatus", mock.Anything, int64(42), domain.StatusCancelled).Return(nil)
		users.On("ListAdminIDs", mock.Anything).Return(nil, errors.New("boom"))

		_, events, err := svc.Cancel(context.Background(), 42, admin)
		require.NoError(t, err)
		require.Len(t, events.Notifications, 1)
		assert.Equal(t, int64(7), events.Notifications[0].UserID)
	})

	t.Run("terminal status", func(t *testing.T) {
		for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted} {
			svc, bookings, _ := newService()
			bookings.On("GetByID", mock.Anything, int64(42)).Return(booking(42, status, day(10, 9), day(10, 10)), nil)

			_, events, err := svc.Cancel(context.Background(), 42, owner)
			assert.ErrorIs(t, err, ErrCannotCancel)
			assert.True(t, events.IsEmpty())
			bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		}
	})

	t.Run("other user", func(t *testing.T) {
		svc, bookings, _ := newService()
		bookings.On("GetByID", mock.Anything, int64(42)).Return(booking(42, domain.StatusPending, day(10, 9), day(10, 10)), nil)

		_, _, err := svc.Cancel(context.Background(), 42, another)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("not found", func(t *testing.T) {
		svc, bookings, _ := newService()
		bookings.On("GetByID", mock.Anything, int64(42)).Return(nil, bookingRepo.ErrBookingNotFound)

		_, _, err := svc.Cancel(context.Background(), 42, owner)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Run("admin", func(t *testing.T) {
		svc, bookings, _ := newService()
		bookings.On("GetByID", mock.Anything, int64(42)).Return(booking(42, domain.StatusApproved, day(10, 9), day(10, 10)), nil)
		bookings.On("Delete", mock.Anything, int64(42)).Return(nil)

		events, err := svc.Delete(context.Background(), 42, admin)
		require.NoError(t, err)

		require.Len(t, events.Notifications, 1)
		assert.Equal(t, int64(7), events.Notifications[0].UserID)
		assert.Nil(t, events.Notifications[0].BookingID)
		require.Len(t, events.ActionLogs, 1)
		assert.Equal(t, int64(1), events.ActionLogs[0].UserID)
		assert.Equal(t, "Deleted booking 42 (room 3, 2025-03-10 09:00 - 2025-03-10 10:00)", events.ActionLogs[0].Action)
	})

	t.Run("non admin", func(t *testing.T) {
		svc, bookings, _ := newService()

		_, err := svc.Delete(context.Background(), 42, owner)
		assert.ErrorIs(t, err, ErrAccessDenied)
		bookings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		svc, bookings, _ := newService()
		bookings.On("GetByID", mock.Anything, int64(42)).Return(nil, bookingRepo.ErrBookingNotFound)

		_, err := svc.Delete(context.Background(), 42, admin)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func ids(items []models.BookingResponse) []int64 {
	out := make([]int64, 0, len(items))
	for _, b := range items {
		out = append(out, b.ID)
	}
	return out
}
