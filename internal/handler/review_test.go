package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-listing-booking/internal/repository"
)

func newReviewTest(t *testing.T) (*ReviewHandler, sqlmock.Sqlmock, *echo.Echo) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewReviewHandler(
		repository.NewListingRepo(db),
		repository.NewReviewRepo(db),
		repository.NewUserRepo(db),
	)
	e := echo.New()
	e.Validator = NewValidator()
	return h, mock, e
}

func TestCreateReviewForcesAuthor(t *testing.T) {
	h, mock, e := newReviewTest(t)
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM listings WHERE id").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(listingCols).AddRow(
			5, 3, "Mountain Cabin", "", "1 Ridge Rd", "Aspen", "CO",
			"USA", 20000, "CA", 3, 2, 6, "fireplace", true, now, now,
		))
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(int64(5), int64(7), int64(4), "great stay").
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM reviews WHERE id").
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}).
			AddRow(7, "guest@example.com", "x", "USER", true, now, now))

	// user_id in the body must be ignored in favour of the token subject
	body := `{"listing_id":5,"rating":4,"comment":"great stay","user_id":999}`
	c, rec := postJSON(e, "/v1/reviews", body, 7)
	require.NoError(t, h.CreateReview(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "guest@example.com", resp["user"])
	assert.Equal(t, "Mountain Cabin", resp["listing"])
	assert.Equal(t, float64(4), resp["rating"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewRejectsRatingOutOfRange(t *testing.T) {
	h, mock, e := newReviewTest(t)

	for _, body := range []string{
		`{"listing_id":5,"rating":6,"comment":"too good"}`,
		`{"listing_id":5,"comment":"no rating"}`,
	} {
		c, _ := postJSON(e, "/v1/reviews", body, 7)
		err := h.CreateReview(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReviewUnknownListing(t *testing.T) {
	h, mock, e := newReviewTest(t)

	mock.ExpectQuery("SELECT (.+) FROM listings WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(listingCols))

	c, rec := postJSON(e, "/v1/reviews", `{"listing_id":99,"rating":3}`, 7)
	require.NoError(t, h.CreateReview(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
