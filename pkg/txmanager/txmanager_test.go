package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerr"
)

func newManager(t *testing.T) (*TransactionManager, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewTransactionManager(dbmetrics.Wrap(sqlDB, nil), metrics.New("test")), mock
}

func TestDoSerializable_Commit(t *testing.T) {
	tm, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		require.True(t, dbmetrics.IsInTransaction(ctx))
		_, err := dbmetrics.GetExecutor(ctx, nil).ExecContext(ctx, "INSERT INTO bookings DEFAULT VALUES")
		return err
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_RollbackOnError(t *testing.T) {
	tm, mock := newManager(t)
	errBusiness := errors.New("slot taken")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDoSerializable_CommitSerializationFailure(t *testing.T) {
	tm, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: pgerr.CodeSerializationFailure})

	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	assert.ErrorIs(t, err, ErrSerializationFailure)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	tm, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	calls := 0
	err := tm.Do(context.Background(), func(ctx context.Context) error {
		return tm.DoSerializable(ctx, func(ctx context.Context) error {
			calls++
			return nil
		})
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_BeginError(t *testing.T) {
	tm, mock := newManager(t)

	mock.ExpectBegin().WillReturnError(assert.AnError)

	err := tm.Do(context.Background(), func(ctx context.Context) error {
		t.Fatal("fn must not run")
		return nil
	})

	assert.ErrorIs(t, err, ErrBegin)
}
