package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-listing-booking/internal/model"
)

func newBookingRepoTest(t *testing.T) (*BookingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBookingRepo(db), mock
}

func TestBookingCreateStoresDateStrings(t *testing.T) {
	repo, mock := newBookingRepoTest(t)
	now := time.Date(2024, 4, 20, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(1), int64(7), "2024-05-01", "2024-05-04", int64(2), int64(60000), "PENDING").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM bookings WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectCommit()

	b := &model.Booking{
		ListingID:       1,
		UserID:          7,
		CheckIn:         time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC), // time of day irrelevant
		CheckOut:        time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC),
		NumberOfGuests:  2,
		TotalPriceCents: 60000,
		Status:          model.BookingPending,
	}
	require.NoError(t, repo.Create(context.Background(), b))
	assert.Equal(t, uint64(42), b.ID)
	assert.Equal(t, now, b.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByUserJoinsListingDisplay(t *testing.T) {
	repo, mock := newBookingRepoTest(t)
	now := time.Date(2024, 4, 20, 10, 0, 0, 0, time.UTC)

	cols := []string{
		"id", "title", "listing_id", "city", "check_in", "check_out",
		"number_of_guests", "total_price_cents", "status", "created_at",
	}
	mock.ExpectQuery("FROM bookings b").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(43, "Mountain Cabin", 5, "Aspen", "2024-06-10", "2024-06-12", 4, 80000, "CONFIRMED", now).
			AddRow(42, "Sea View Flat", 1, "Lisbon", "2024-05-01", "2024-05-04", 2, 60000, "PENDING", now))

	out, err := repo.ListByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Mountain Cabin", out[0].Listing)
	assert.Equal(t, "2024-05-01", out[1].CheckIn)
	assert.Equal(t, uint32(60000), out[1].TotalPriceCents)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDForUserHidesOtherUsersBookings(t *testing.T) {
	repo, mock := newBookingRepoTest(t)

	mock.ExpectQuery("FROM bookings b").
		WithArgs(int64(42), int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByIDForUser(context.Background(), 42, 8)
	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
