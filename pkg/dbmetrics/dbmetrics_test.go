package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
)

func TestDB_RecordsQueries(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	m := metrics.New("test")
	db := Wrap(sqlDB, m)

	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id").WillReturnError(assert.AnError)

	_, err = db.ExecContext(context.Background(), "UPDATE bookings SET status = $1", "approved")
	require.NoError(t, err)
	_, err = db.QueryContext(context.Background(), "SELECT id FROM bookings")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueriesTotal.WithLabelValues("update", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DBQueriesTotal.WithLabelValues("select", "error")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetExecutor(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil)
	ctx := context.Background()

	assert.Same(t, db, GetExecutor(ctx, db))
	assert.False(t, IsInTransaction(ctx))

	mock.ExpectBegin()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Equal(t, tx, GetExecutor(txCtx, db))

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("  SELECT 1"))
	assert.Equal(t, "insert", operation("INSERT INTO rooms"))
	assert.Equal(t, "unknown", operation(""))
}
