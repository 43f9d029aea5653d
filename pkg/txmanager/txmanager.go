// Package txmanager runs functions inside database transactions and passes
// the transaction down through the context (see dbmetrics.GetExecutor).
package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/metrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/pgerr"
)

var (
	// ErrSerializationFailure транзакция не прошла из-за конкурентной записи, ее можно повторить
	ErrSerializationFailure = errors.New("txmanager: serialization failure")

	// ErrBegin не удалось открыть транзакцию
	ErrBegin = errors.New("txmanager: failed to begin transaction")

	// ErrCommit не удалось зафиксировать транзакцию
	ErrCommit = errors.New("txmanager: failed to commit transaction")
)

// TxBeginner источник транзакций (*dbmetrics.DB)
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// TransactionManager менеджер транзакций
type TransactionManager struct {
	db      TxBeginner
	metrics *metrics.Metrics
}

// NewTransactionManager создает менеджер транзакций; m может быть nil
func NewTransactionManager(db TxBeginner, m *metrics.Metrics) *TransactionManager {
	return &TransactionManager{db: db, metrics: m}
}

// Do выполняет fn в транзакции с уровнем изоляции по умолчанию
func (m *TransactionManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{}, "default", fn)
}

// DoSerializable выполняет fn в транзакции SERIALIZABLE.
// Конфликт сериализации возвращается как ErrSerializationFailure.
func (m *TransactionManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.run(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, "serializable", fn)
}

func (m *TransactionManager) run(ctx context.Context, opts *sql.TxOptions, isolation string, fn func(ctx context.Context) error) (err error) {
	// Вложенный вызов переиспользует внешнюю транзакцию
	if dbmetrics.IsInTransaction(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, opts)
	if err != nil {
		m.observe(isolation, "begin_error")
		return fmt.Errorf("%w: %v", ErrBegin, err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			m.observe(isolation, "panic")
			panic(p)
		}
	}()

	if err = fn(dbmetrics.WithTx(ctx, tx)); err != nil {
		_ = tx.Rollback()
		m.observe(isolation, "rollback")
		if pgerr.IsSerializationFailure(err) {
			return fmt.Errorf("%w: %v", ErrSerializationFailure, err)
		}
		return err
	}

	if err = tx.Commit(); err != nil {
		if pgerr.IsSerializationFailure(err) {
			m.observe(isolation, "serialization_failure")
			return fmt.Errorf("%w: %v", ErrSerializationFailure, err)
		}
		m.observe(isolation, "commit_error")
		return fmt.Errorf("%w: %v", ErrCommit, err)
	}

	m.observe(isolation, "commit")
	return nil
}

func (m *TransactionManager) observe(isolation, status string) {
	if m.metrics == nil {
		return
	}
	m.metrics.DBTransactionsTotal.WithLabelValues(isolation, status).Inc()
}
