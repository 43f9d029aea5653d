package booking

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

func newTestRepository(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db := dbmetrics.Wrap(sqlDB, nil)
	return NewRepository(db), db, mock
}

var (
	monday10 = time.Date(2025, time.March, 10, 10, 0, 0, 0, time.UTC)
	monday11 = time.Date(2025, time.March, 10, 11, 0, 0, 0, time.UTC)
)

func TestRepository_Create(t *testing.T) {
	repo, _, mock := newTestRepository(t)
	created := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings (user_id,room_id,start_time,end_time,status) VALUES ($1,$2,$3,$4,$5) RETURNING id, created_at, updated_at")).
		WithArgs(int64(7), int64(3), monday10, monday11, domain.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(42), created, created))

	booking, err := repo.Create(context.Background(), &domain.Booking{
		UserID:    7,
		RoomID:    3,
		StartTime: monday10,
		EndTime:   monday11,
		Status:    domain.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), booking.ID)
	assert.Equal(t, created, booking.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_ExclusionViolationIsConflict(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23P01", Message: "conflicting key value violates exclusion constraint"})

	_, err := repo.Create(context.Background(), &domain.Booking{
		UserID: 7, RoomID: 3, StartTime: monday10, EndTime: monday11, Status: domain.StatusPending,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRepository_Create_SerializationFailureIsConflict(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "40001", Message: "could not serialize access"})

	_, err := repo.Create(context.Background(), &domain.Booking{
		UserID: 7, RoomID: 3, StartTime: monday10, EndTime: monday11, Status: domain.StatusPending,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRepository_Create_UnknownRoom(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectQuery("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23503", Message: "violates foreign key constraint"})

	_, err := repo.Create(context.Background(), &domain.Booking{
		UserID: 7, RoomID: 999, StartTime: monday10, EndTime: monday11, Status: domain.StatusPending,
	})
	assert.ErrorIs(t, err, ErrReferenceNotFound)
}

func TestRepository_HasActiveOverlap(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM bookings WHERE room_id = $1 AND status IN ($2,$3) AND start_time < $4 AND end_time > $5)")).
		WithArgs(int64(3), "pending", "approved", monday11, monday10).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	overlaps, err := repo.HasActiveOverlap(context.Background(), 3, monday10, monday11, nil)
	require.NoError(t, err)
	assert.True(t, overlaps)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_HasActiveOverlap_ExcludesRescheduledBooking(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("AND id <> $6)")).
		WithArgs(int64(3), "pending", "approved", monday11, monday10, int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	overlaps, err := repo.HasActiveOverlap(context.Background(), 3, monday10, monday11, ptr.Ptr(int64(42)))
	require.NoError(t, err)
	assert.False(t, overlaps)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_LockRoom(t *testing.T) {
	repo, db, mock := newTestRepository(t)
	ctx := context.Background()

	// Вне транзакции запрос не выполняется
	require.NoError(t, repo.LockRoom(ctx, 3))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.LockRoom(dbmetrics.WithTx(ctx, tx), 3))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	rows := sqlmock.NewRows(bookingColumns).
		AddRow(int64(42), int64(7), int64(3), monday10, monday11, "approved", monday10, monday10)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, room_id, start_time, end_time, status, created_at, updated_at FROM bookings WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnRows(rows)

	booking, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, booking.Status)
	assert.Equal(t, int64(3), booking.RoomID)
	assert.True(t, booking.StartTime.Equal(monday10))
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT (.+) FROM bookings").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_List_DefaultsToActive(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE user_id = $1 AND status IN ($2,$3) ORDER BY start_time ASC, id ASC")).
		WithArgs(int64(7), "pending", "approved").
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(int64(1), int64(7), int64(3), monday10, monday11, "pending", monday10, monday10))

	bookings, err := repo.List(context.Background(), domain.BookingsFilter{UserID: ptr.Ptr(int64(7))})
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, domain.StatusPending, bookings[0].Status)
}

func TestRepository_List_StatusOverridesIncludeInactive(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	status := domain.StatusCancelled
	mock.ExpectQuery(regexp.QuoteMeta("WHERE room_id = $1 AND status = $2 ORDER BY")).
		WithArgs(int64(3), status).
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	bookings, err := repo.List(context.Background(), domain.BookingsFilter{
		RoomID: ptr.Ptr(int64(3)),
		Status: &status,
	})
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2")).
		WithArgs(domain.StatusApproved, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), 42, domain.StatusApproved))
}

func TestRepository_UpdateStatus_NotFound(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 42, domain.StatusApproved)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_UpdateTimes_Conflict(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET end_time = $1, start_time = $2, updated_at = NOW() WHERE id = $3")).
		WithArgs(monday11, monday10, int64(42)).
		WillReturnError(&pq.Error{Code: "23P01"})

	err := repo.UpdateTimes(context.Background(), 42, monday10, monday11)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRepository_Delete(t *testing.T) {
	repo, _, mock := newTestRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM bookings WHERE id = $1")).
		WithArgs(int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), 42))

	mock.ExpectExec("DELETE FROM bookings").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), 43), ErrBookingNotFound)
}
