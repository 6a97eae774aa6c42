package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileCreateReturnsStoredRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`INSERT INTO profiles .* ON CONFLICT \(user_id\) DO UPDATE`).
		WithArgs("user_1", "Ada", "ada@example.com", "").
		WillReturnRows(profileRows().AddRow("p-1", "user_1", "Ada Lovelace", "ada@example.com", "", testTime, testTime))

	profile := &Profile{UserID: "user_1", Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, repo.Create(context.Background(), profile))

	assert.Equal(t, "p-1", profile.ID)
	assert.Equal(t, "Ada Lovelace", profile.Name, "existing row wins on conflict")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileFindByUserIDMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfileRepository(db)

	mock.ExpectQuery(`FROM profiles WHERE user_id = \$1`).
		WithArgs("nobody").
		WillReturnRows(profileRows())

	profile, err := repo.FindByUserID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, profile)
	assert.NoError(t, mock.ExpectationsWereMet())
}
