package availability

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewRepository(dbmetrics.Wrap(sqlDB, nil)), mock
}

func TestRepository_GetByRoomAndDay(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows(windowColumns).
		AddRow(int64(1), int64(3), "Monday", "09:00:00", "12:00:00", true).
		AddRow(int64(2), int64(3), "Monday", "13:00:00", "17:00:00", false)

	mock.ExpectQuery(regexp.QuoteMeta("FROM availability WHERE day_of_week = $1 AND room_id = $2")).
		WithArgs("Monday", int64(3)).
		WillReturnRows(rows)

	windows, err := repo.GetByRoomAndDay(context.Background(), 3, domain.Monday)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	assert.Equal(t, domain.Monday, windows[0].DayOfWeek)
	assert.Equal(t, types.TimeString("09:00"), windows[0].StartTime)
	assert.Equal(t, types.TimeString("12:00"), windows[0].EndTime)
	assert.True(t, windows[0].IsAvailable)
	assert.False(t, windows[1].IsAvailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByRoomAndDay_Empty(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("FROM availability").WillReturnRows(sqlmock.NewRows(windowColumns))

	windows, err := repo.GetByRoomAndDay(context.Background(), 3, domain.Tuesday)
	require.NoError(t, err)
	assert.NotNil(t, windows)
	assert.Empty(t, windows)
}

func TestRepository_GetByRoomAndDay_UnknownWeekdayInStorage(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("FROM availability").WillReturnRows(sqlmock.NewRows(windowColumns).
		AddRow(int64(1), int64(3), "Funday", "09:00", "12:00", true))

	_, err := repo.GetByRoomAndDay(context.Background(), 3, domain.Monday)
	assert.ErrorIs(t, err, ErrScanRow)
}

func TestRepository_GetByRoomAndDay_SerializationFailure(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("FROM availability").WillReturnError(&pq.Error{Code: "40001"})

	_, err := repo.GetByRoomAndDay(context.Background(), 3, domain.Monday)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO availability (room_id,day_of_week,start_time,end_time,is_available) VALUES ($1,$2,$3,$4,$5) RETURNING id")).
		WithArgs(int64(3), "Monday", "09:00", "12:00", true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	window, err := repo.Create(context.Background(), &domain.AvailabilityWindow{
		RoomID:      3,
		DayOfWeek:   domain.Monday,
		StartTime:   types.MustTimeString("09:00"),
		EndTime:     types.MustTimeString("12:00"),
		IsAvailable: true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), window.ID)
}

func TestRepository_Create_UnknownRoom(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("INSERT INTO availability").WillReturnError(&pq.Error{Code: "23503"})

	_, err := repo.Create(context.Background(), &domain.AvailabilityWindow{
		RoomID:    999,
		DayOfWeek: domain.Monday,
		StartTime: types.MustTimeString("09:00"),
		EndTime:   types.MustTimeString("12:00"),
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability WHERE id = $1")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 5), ErrWindowNotFound)
}
