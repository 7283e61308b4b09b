package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/travel-listing-booking/internal/repository"
)

func newPublicTest(t *testing.T) (*PublicHandler, sqlmock.Sqlmock, *echo.Echo) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := &PublicHandler{
		Listings: repository.NewListingRepo(db),
		Reviews:  repository.NewReviewRepo(db),
	}
	return h, mock, echo.New()
}

func getRequest(e *echo.Echo, target string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSearchListingsCapsPageParam(t *testing.T) {
	h, mock, e := newPublicTest(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM listings l`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	// page clamps to 1000000, so the offset stays a valid non-negative value
	mock.ExpectQuery("SELECT (.+) FROM listings l").
		WithArgs(int64(20), int64((maxSearchPage-1)*20)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "city", "state", "country", "property_type",
			"price_per_night_cents", "num_bedrooms", "num_bathrooms", "max_guests", "is_available",
		}))

	// overflows int when parsed, then again when multiplied by page_size
	c, rec := getRequest(e, "/v1/listings?page=99999999999999999999")
	require.NoError(t, h.SearchListings(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(maxSearchPage), resp["page"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchListingsDefaultsPageAndSize(t *testing.T) {
	h, mock, e := newPublicTest(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM listings l`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery("SELECT (.+) FROM listings l").
		WithArgs(int64(20), int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "title", "city", "state", "country", "property_type",
			"price_per_night_cents", "num_bedrooms", "num_bathrooms", "max_guests", "is_available",
		}))

	c, rec := getRequest(e, "/v1/listings?page=-3&page_size=5000")
	require.NoError(t, h.SearchListings(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["page"])
	assert.Equal(t, float64(20), resp["page_size"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
