package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "pgx"), mock
}

func listRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "profile_id", "invite_code", "created_at", "updated_at"})
}

func profileRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "name", "email", "image_url", "created_at", "updated_at"})
}
