package repositories

import (
	"context"
	"errors"
	"testing"

	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGatewayMock(t *testing.T) (*Gateway, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewGateway(mock), mock
}

func TestWithTransaction_Commit(t *testing.T) {
	gw, mock := newGatewayMock(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE aggregates").WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	err := gw.WithTransaction(context.Background(), func(tx pgx.Tx) error {
		_, err := tx.Exec(context.Background(), "UPDATE aggregates SET status = 'reserve'")
		return err
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollbackOnError(t *testing.T) {
	gw, mock := newGatewayMock(t)
	boom := errors.New("insert failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := gw.WithTransaction(context.Background(), func(tx pgx.Tx) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_RollbackAndRepanic(t *testing.T) {
	gw, mock := newGatewayMock(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "bad state", func() {
		_ = gw.WithTransaction(context.Background(), func(tx pgx.Tx) error {
			panic("bad state")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_BeginFails(t *testing.T) {
	gw, mock := newGatewayMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	called := false
	err := gw.WithTransaction(context.Background(), func(tx pgx.Tx) error {
		called = true
		return nil
	})
	assert.Error(t, err)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransaction_CommitFails(t *testing.T) {
	gw, mock := newGatewayMock(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("serialization failure"))

	err := gw.WithTransaction(context.Background(), func(tx pgx.Tx) error { return nil })
	assert.ErrorContains(t, err, "failed to commit transaction")
}

func TestPrefixed(t *testing.T) {
	assert.Equal(t, "a.id, a.tenant_id, a.status", prefixed("a", "id, tenant_id,\n\tstatus"))
}

func TestMarshalJSONB(t *testing.T) {
	b, err := marshalJSONB(map[string]string(nil))
	require.NoError(t, err)
	assert.Nil(t, b)

	b, err = marshalJSONB(map[string]string{"M43": "Motorvagn"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"M43":"Motorvagn"}`, string(b))
}
