package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserRepoTest(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db), mock
}

func TestUserCreateNormalizesEmail(t *testing.T) {
	repo, mock := newUserRepoTest(t)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("guest@example.com", sqlmock.AnyArg(), "USER").
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := repo.Create(context.Background(), "  Guest@Example.COM ", "secret", "USER", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo, mock := newUserRepoTest(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry"))

	_, err := repo.Create(context.Background(), "guest@example.com", "secret", "USER", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateReusesExistingRow(t *testing.T) {
	repo, mock := newUserRepoTest(t)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("admin@travelapp.local").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}).
			AddRow(1, "admin@travelapp.local", "x", "ADMIN", true, now, now))

	id, created, err := repo.GetOrCreate(context.Background(), "admin@travelapp.local", "admin123", "ADMIN", bcrypt.MinCost)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, uint64(1), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateInsertsWhenMissing(t *testing.T) {
	repo, mock := newUserRepoTest(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email").
		WithArgs("user1@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec("INSERT INTO users").
		WithArgs("user1@example.com", sqlmock.AnyArg(), "USER").
		WillReturnResult(sqlmock.NewResult(2, 1))

	id, created, err := repo.GetOrCreate(context.Background(), "user1@example.com", "user123", "USER", bcrypt.MinCost)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint64(2), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
