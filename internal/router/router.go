package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-listing-booking/internal/handler"
	"github.com/iliyamo/travel-listing-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Used by load balancers and monitoring to verify the service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies
// the necessary middleware.  Unauthenticated operations live under
// /v1/auth, while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token; refresh-access only issues a
	// new access token.
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token (all sessions) or a JSON
	// body with a refresh_token (single session); it is registered
	// outside the JWT middleware on purpose.
	g.POST("/logout", a.Logout)

	// Protected endpoints require a valid access token and a known role.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("USER", "ADMIN"))
	auth.GET("/me", a.Me)

	// Top-level alias so clients can call either /v1/auth/logout or
	// /v1/logout with a valid refresh token in the body.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints on the
// provided Echo instance.  The PublicHandler exposes sanitized listing
// data for guest users; no JWT or role middleware is applied.  The
// optional extra middlewares (response cache) are applied per route.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mws ...echo.MiddlewareFunc) {
	// Filtered, paginated listing browse
	e.GET("/v1/listings", p.SearchListings, mws...)
	// Full listing record by id
	e.GET("/v1/listings/:id", p.GetListing, mws...)
	// Reviews of a listing, newest first
	e.GET("/v1/listings/:id/reviews", p.GetListingReviews, mws...)
}
