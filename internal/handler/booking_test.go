package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-listing-booking/internal/repository"
)

var listingCols = []string{
	"id", "owner_id", "title", "description", "address", "city", "state", "country",
	"price_per_night_cents", "property_type", "num_bedrooms", "num_bathrooms",
	"max_guests", "amenities", "is_available", "created_at", "updated_at",
}

func newBookingTest(t *testing.T) (*BookingHandler, sqlmock.Sqlmock, *echo.Echo) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := NewBookingHandler(
		repository.NewListingRepo(db),
		repository.NewBookingRepo(db),
		repository.NewUserRepo(db),
	)
	e := echo.New()
	e.Validator = NewValidator()
	return h, mock, e
}

func postJSON(e *echo.Echo, target, body string, userID uint64) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	return c, rec
}

func TestCreateBookingComputesTotalServerSide(t *testing.T) {
	h, mock, e := newBookingTest(t)
	now := time.Date(2024, 4, 20, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM listings WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(listingCols).AddRow(
			1, 3, "Sea View Flat", "bright and airy", "12 Harbour St", "Lisbon", "",
			"Portugal", 10000, "AP", 2, 1, 4, "wifi,kitchen", true, now, now,
		))
	// 3 nights x 10000 cents x 2 guests
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(int64(1), int64(7), "2024-05-01", "2024-05-04", int64(2), int64(60000), "PENDING").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM bookings WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role", "is_active", "created_at", "updated_at"}).
			AddRow(7, "guest@example.com", "x", "USER", true, now, now))

	body := `{"listing_id":1,"check_in":"2024-05-01","check_out":"2024-05-04","number_of_guests":2,"total_price_cents":1,"status":"CONFIRMED","user_id":999}`
	c, rec := postJSON(e, "/v1/bookings", body, 7)
	require.NoError(t, h.CreateBooking(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	// client-sent price, status and user are ignored
	assert.Equal(t, float64(60000), resp["total_price_cents"])
	assert.Equal(t, "PENDING", resp["status"])
	assert.Equal(t, "guest@example.com", resp["user"])
	assert.Equal(t, "Sea View Flat", resp["listing"])
	assert.Equal(t, float64(42), resp["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsBadDateOrder(t *testing.T) {
	h, mock, e := newBookingTest(t)

	for _, tc := range []struct{ in, out string }{
		{"2024-05-04", "2024-05-01"}, // reversed
		{"2024-05-01", "2024-05-01"}, // equal
	} {
		body := `{"listing_id":1,"check_in":"` + tc.in + `","check_out":"` + tc.out + `","number_of_guests":2}`
		c, rec := postJSON(e, "/v1/bookings", body, 7)
		require.NoError(t, h.CreateBooking(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Check-out date must be after check-in date")
	}
	// rejected before any database work
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsTooManyGuests(t *testing.T) {
	h, mock, e := newBookingTest(t)
	now := time.Date(2024, 4, 20, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM listings WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(listingCols).AddRow(
			1, 3, "Sea View Flat", "", "12 Harbour St", "Lisbon", "",
			"Portugal", 10000, "AP", 2, 1, 4, "", true, now, now,
		))
	mock.ExpectRollback()

	body := `{"listing_id":1,"check_in":"2024-05-01","check_out":"2024-05-04","number_of_guests":5}`
	c, rec := postJSON(e, "/v1/bookings", body, 7)
	require.NoError(t, h.CreateBooking(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "This listing accommodates maximum 4 guests")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsPriceOverflow(t *testing.T) {
	h, mock, e := newBookingTest(t)
	now := time.Date(2024, 4, 20, 10, 0, 0, 0, time.UTC)

	// 3653 nights x 50000 cents x 24 guests overflows the 32-bit cents column
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM listings WHERE id").
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(listingCols).AddRow(
			1, 3, "Chateau", "", "1 Rue Grande", "Nice", "",
			"France", 50000, "VI", 10, 8, 24, "", true, now, now,
		))
	mock.ExpectRollback()

	body := `{"listing_id":1,"check_in":"2024-01-01","check_out":"2034-01-01","number_of_guests":24}`
	c, rec := postJSON(e, "/v1/bookings", body, 7)
	require.NoError(t, h.CreateBooking(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "total price exceeds supported range")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingUnknownListing(t *testing.T) {
	h, mock, e := newBookingTest(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM listings WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(listingCols))
	mock.ExpectRollback()

	body := `{"listing_id":99,"check_in":"2024-05-01","check_out":"2024-05-04","number_of_guests":2}`
	c, rec := postJSON(e, "/v1/bookings", body, 7)
	require.NoError(t, h.CreateBooking(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingRejectsMalformedDates(t *testing.T) {
	h, _, e := newBookingTest(t)

	body := `{"listing_id":1,"check_in":"05/01/2024","check_out":"2024-05-04","number_of_guests":2}`
	c, rec := postJSON(e, "/v1/bookings", body, 7)
	require.NoError(t, h.CreateBooking(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "check_in must be a YYYY-MM-DD date")
}

func TestCreateBookingRequiresGuests(t *testing.T) {
	h, _, e := newBookingTest(t)

	body := `{"listing_id":1,"check_in":"2024-05-01","check_out":"2024-05-04"}`
	c, _ := postJSON(e, "/v1/bookings", body, 7)
	err := h.CreateBooking(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
