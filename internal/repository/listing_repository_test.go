package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-listing-booking/internal/model"
)

func newListingRepoTest(t *testing.T) (*ListingRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewListingRepo(db), mock
}

func TestListingCreatePopulatesIDAndTimestamps(t *testing.T) {
	repo, mock := newListingRepoTest(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("INSERT INTO listings").
		WithArgs(int64(3), "Sea View Flat", "bright", "12 Harbour St", "Lisbon", "",
			"Portugal", int64(10000), "AP", int64(2), int64(1), int64(4), "wifi", true).
		WillReturnResult(sqlmock.NewResult(17, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM listings WHERE id").
		WithArgs(int64(17)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	l := &model.Listing{
		OwnerID: 3, Title: "Sea View Flat", Description: "bright",
		Address: "12 Harbour St", City: "Lisbon", Country: "Portugal",
		PricePerNightCents: 10000, PropertyType: "AP",
		NumBedrooms: 2, NumBathrooms: 1, MaxGuests: 4,
		Amenities: "wifi", IsAvailable: true,
	}
	require.NoError(t, repo.Create(context.Background(), l))
	assert.Equal(t, uint64(17), l.ID)
	assert.Equal(t, now, l.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDAndOwnerRemovesDependents(t *testing.T) {
	repo, mock := newListingRepoTest(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT owner_id FROM listings WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(3))
	// dependents go first so the final delete cannot orphan rows
	mock.ExpectExec("DELETE FROM bookings WHERE listing_id").
		WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM reviews WHERE listing_id").
		WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM listings WHERE id").
		WithArgs(int64(5)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.DeleteByIDAndOwner(context.Background(), 5, 3))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDAndOwnerForbidden(t *testing.T) {
	repo, mock := newListingRepoTest(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT owner_id FROM listings WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(8))
	mock.ExpectRollback()

	err := repo.DeleteByIDAndOwner(context.Background(), 5, 3)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDAndOwnerMissing(t *testing.T) {
	repo, mock := newListingRepoTest(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT owner_id FROM listings WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}))
	mock.ExpectRollback()

	err := repo.DeleteByIDAndOwner(context.Background(), 99, 3)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	repo, mock := newListingRepoTest(t)

	mock.ExpectQuery("SELECT owner_id FROM listings WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE listings SET title = ?, price_per_night_cents = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND owner_id = ?")).
		WithArgs("Renamed", int64(12500), int64(5), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	title := "Renamed"
	price := uint32(12500)
	err := repo.Update(context.Background(), 5, 3, ListingUpdate{Title: &title, PricePerNightCents: &price})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateNoFieldsIsOwnershipCheckOnly(t *testing.T) {
	repo, mock := newListingRepoTest(t)

	mock.ExpectQuery("SELECT owner_id FROM listings WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(3))

	require.NoError(t, repo.Update(context.Background(), 5, 3, ListingUpdate{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateForbiddenForNonOwner(t *testing.T) {
	repo, mock := newListingRepoTest(t)

	mock.ExpectQuery("SELECT owner_id FROM listings WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(8))

	title := "Renamed"
	err := repo.Update(context.Background(), 5, 3, ListingUpdate{Title: &title})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}
