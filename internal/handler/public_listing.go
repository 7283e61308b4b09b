// This file defines handlers for the public browsing API. These routes allow
// unauthenticated users to browse listings and their reviews without
// authentication. Sensitive fields (owner IDs, timestamps) are filtered from
// list responses.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-listing-booking/internal/repository"
)

// PublicHandler aggregates repositories needed for unauthenticated
// browsing.  It produces sanitized responses suitable for public
// consumption.
type PublicHandler struct {
	Listings *repository.ListingRepo
	Reviews  *repository.ReviewRepo
}

// maxSearchPage bounds the page query parameter.
const maxSearchPage = 1000000

// SearchListings handles GET /v1/listings.  Supported query parameters:
// city, country, property_type, max_price_cents, guests, available,
// page, page_size.  Results are paginated and returned together with the
// total match count.
func (h *PublicHandler) SearchListings(c echo.Context) error {
	q := repository.ListingSearchQuery{
		City:         c.QueryParam("city"),
		Country:      c.QueryParam("country"),
		PropertyType: c.QueryParam("property_type"),
	}
	if v := c.QueryParam("max_price_cents"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			q.MaxPriceCents = uint32(n)
		}
	}
	if v := c.QueryParam("guests"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 32); err == nil {
			q.Guests = uint32(n)
		}
	}
	if v := c.QueryParam("available"); v == "true" || v == "1" {
		q.OnlyAvailable = true
	}
	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	if q.Page < 1 {
		q.Page = 1
	}
	// bounded so page*page_size can never overflow into a negative OFFSET
	if q.Page > maxSearchPage {
		q.Page = maxSearchPage
	}
	q.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
	if q.PageSize < 1 || q.PageSize > 100 {
		q.PageSize = 20
	}

	items, total, err := h.Listings.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":     items,
		"total":     total,
		"page":      q.Page,
		"page_size": q.PageSize,
	})
}

// GetListing handles GET /v1/listings/:id and returns the full listing
// record.
func (h *PublicHandler) GetListing(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	l, err := h.Listings.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, toListingResp(l))
}

// GetListingReviews handles GET /v1/listings/:id/reviews.  It validates
// the listing exists, then returns its reviews newest first.
func (h *PublicHandler) GetListingReviews(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid listing id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Listings.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	reviews, err := h.Reviews.ListByListing(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": reviews})
}
