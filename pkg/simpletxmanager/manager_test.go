package simpletxmanager

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubConn считает открытые транзакции; первые failCommits коммитов
// завершаются конфликтом сериализации
type stubConn struct {
	begun       int
	commits     int
	failCommits int
}

func (c *stubConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare is not supported")
}

func (c *stubConn) Close() error { return nil }

func (c *stubConn) Begin() (driver.Tx, error) {
	return c.BeginTx(context.Background(), driver.TxOptions{})
}

func (c *stubConn) BeginTx(_ context.Context, _ driver.TxOptions) (driver.Tx, error) {
	c.begun++
	return &stubTx{conn: c}, nil
}

type stubTx struct {
	conn *stubConn
}

func (t *stubTx) Commit() error {
	t.conn.commits++
	if t.conn.commits <= t.conn.failCommits {
		return &pq.Error{Code: "40001"}
	}
	return nil
}

func (t *stubTx) Rollback() error { return nil }

type stubConnector struct {
	conn *stubConn
}

func (c stubConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c stubConnector) Driver() driver.Driver                        { return stubDriver{} }

type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open is not supported")
}

func newTestManager(conn *stubConn) (*TransactionManager, *sql.DB) {
	db := sql.OpenDB(stubConnector{conn: conn})
	return NewTransactionManager(db), db
}

func TestDoSerializableRetriesOnSerializationFailure(t *testing.T) {
	conn := &stubConn{failCommits: 1}
	m, db := newTestManager(conn)
	defer db.Close()

	calls := 0
	err := m.DoSerializable(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)

	// Проигравший коммит повторяется прозрачно для вызывающего
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, conn.begun)
}

func TestDoSerializableGivesUpAfterMaxRetries(t *testing.T) {
	conn := &stubConn{failCommits: maxSerializableRetries + 1}
	m, db := newTestManager(conn)
	defer db.Close()

	err := m.DoSerializable(context.Background(), func(context.Context) error { return nil })
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCommitTx)

	// *pq.Error сохраняется в цепочке даже после обёртки коммита
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)

	assert.Equal(t, maxSerializableRetries, conn.begun)
}

func TestDoSerializableDoesNotRetryDomainErrors(t *testing.T) {
	conn := &stubConn{}
	m, db := newTestManager(conn)
	defer db.Close()

	errSlotTaken := errors.New("slot taken")
	err := m.DoSerializable(context.Background(), func(context.Context) error { return errSlotTaken })
	assert.ErrorIs(t, err, errSlotTaken)
	assert.Equal(t, 1, conn.begun)
}
