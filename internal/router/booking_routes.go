package router

// This file registers the booking and review endpoints.  Both resources
// are created only through the validated path: the handlers force the
// acting user from the JWT context and compute every server-assigned
// field themselves.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-listing-booking/internal/handler"
	"github.com/iliyamo/travel-listing-booking/internal/middleware"
)

// RegisterBookings registers booking endpoints under /v1.  All routes
// require a valid JWT and a known role.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER", "ADMIN"),
	)
	g.POST("/bookings", h.CreateBooking)
	g.GET("/bookings", h.ListMyBookings)
	g.GET("/bookings/:id", h.GetMyBooking)
}

// RegisterReviews registers the review creation endpoint under /v1.
// Reading reviews is public (GET /v1/listings/:id/reviews).
func RegisterReviews(e *echo.Echo, h *handler.ReviewHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER", "ADMIN"),
	)
	g.POST("/reviews", h.CreateReview)
}
