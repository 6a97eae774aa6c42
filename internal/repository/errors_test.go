package repository

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	assert.NoError(t, classify(nil))

	err := classify(sql.ErrNoRows)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	err = classify(&pgconn.PgError{Code: "23505", ConstraintName: "lists_invite_code_key"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "lists_invite_code_key")

	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))

	err = classify(&pgconn.PgError{Code: "23503", ConstraintName: "members_profile_id_fkey"})
	assert.ErrorIs(t, err, ErrForeignKey)

	serialization := &pgconn.PgError{Code: "40001"}
	assert.Same(t, serialization, classify(serialization))

	other := errors.New("connection reset")
	assert.Equal(t, other, classify(other))
}
