package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-listing-booking/internal/handler"
	"github.com/iliyamo/travel-listing-booking/internal/middleware"
)

// RegisterListings registers authenticated listing management endpoints
// under /v1.  All routes require a valid JWT; the owner of a created
// listing is always the requester, and updates/deletes are restricted
// to the owner inside the handlers.
func RegisterListings(e *echo.Echo, h *handler.ListingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER", "ADMIN"),
	)
	g.POST("/listings", h.CreateListing)
	g.PATCH("/listings/:id", h.UpdateListing)
	g.PUT("/listings/:id", h.UpdateListing) // same partial semantics for clients that use PUT
	g.DELETE("/listings/:id", h.DeleteListing)
	// NOTE: browsing and reading listings is handled by the public API
	// (GET /v1/listings, GET /v1/listings/:id); only the owner-scoped
	// "my listings" view lives here.
	g.GET("/my/listings", h.ListMyListings)
}
