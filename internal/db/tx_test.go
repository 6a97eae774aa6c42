package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "pgx"), mock
}

func TestWithTransactionCommits(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM items`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	err := WithTransaction(context.Background(), db, func(tx *sqlx.Tx) error {
		_, err := tx.Exec(`DELETE FROM items`)
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := WithTransaction(context.Background(), db, func(tx *sqlx.Tx) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionRollsBackOnPanic(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = WithTransaction(context.Background(), db, func(tx *sqlx.Tx) error {
			panic("unexpected")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTransactionBeginFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(errors.New("no connection"))

	err := WithTransaction(context.Background(), db, func(tx *sqlx.Tx) error {
		t.Fatal("fn must not run")
		return nil
	})

	assert.ErrorContains(t, err, "failed to begin transaction")
}
