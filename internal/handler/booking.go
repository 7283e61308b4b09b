package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-listing-booking/internal/model"
	"github.com/iliyamo/travel-listing-booking/internal/pricing"
	"github.com/iliyamo/travel-listing-booking/internal/queue"
	"github.com/iliyamo/travel-listing-booking/internal/repository"
	publisher "github.com/iliyamo/travel-listing-booking/internal/service"
)

// BookingHandler groups repositories required to create and list
// bookings on behalf of authenticated users.  All methods assume that
// JWT authentication has already been performed by middleware; the
// acting user always comes from the token, never from the request body.
// Creation runs inside a single DB transaction so the listing lookup
// and the booking insert see one consistent snapshot.
type BookingHandler struct {
	Listings *repository.ListingRepo
	Bookings *repository.BookingRepo
	Users    *repository.UserRepo
}

// NewBookingHandler constructs a BookingHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewBookingHandler(listings *repository.ListingRepo, bookings *repository.BookingRepo, users *repository.UserRepo) *BookingHandler {
	if listings == nil || bookings == nil || users == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{Listings: listings, Bookings: bookings, Users: users}
}

// createBookingReq is the full set of client-writable booking fields.
// id, user, status, total price and timestamps are server-assigned and
// have no place here.
type createBookingReq struct {
	ListingID      uint64 `json:"listing_id" validate:"required"`
	CheckIn        string `json:"check_in" validate:"required"`
	CheckOut       string `json:"check_out" validate:"required"`
	NumberOfGuests uint32 `json:"number_of_guests" validate:"required,min=1"`
}

// bookingResp is the booking representation returned on create.  User
// and listing appear in display form.
type bookingResp struct {
	ID              uint64 `json:"id"`
	User            string `json:"user"`
	Listing         string `json:"listing"`
	CheckIn         string `json:"check_in"`
	CheckOut        string `json:"check_out"`
	NumberOfGuests  uint32 `json:"number_of_guests"`
	TotalPriceCents uint32 `json:"total_price_cents"`
	Status          string `json:"status"`
	CreatedAt       string `json:"created_at"`
}

const bookingDateLayout = "2006-01-02"

// CreateBooking handles POST /v1/bookings.  Validation is evaluated in
// order: date ordering first, then guest capacity against the listing.
// The total price is always computed server-side as
// nights × nightly rate × guests, the user is forced to the requester
// and the status is forced to PENDING.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	checkIn, err := time.Parse(bookingDateLayout, req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_in must be a YYYY-MM-DD date"})
	}
	checkOut, err := time.Parse(bookingDateLayout, req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "check_out must be a YYYY-MM-DD date"})
	}
	if !checkIn.Before(checkOut) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Check-out date must be after check-in date"})
	}

	ctx := c.Request().Context()
	tx, err := h.Listings.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	listing, err := h.Listings.GetByIDTx(ctx, tx, req.ListingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	if req.NumberOfGuests > listing.MaxGuests {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": fmt.Sprintf("This listing accommodates maximum %d guests", listing.MaxGuests),
		})
	}
	total, err := pricing.TotalCents(checkIn, checkOut, listing.PricePerNightCents, req.NumberOfGuests)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "total price exceeds supported range"})
	}

	b := &model.Booking{
		ListingID:       listing.ID,
		UserID:          userID,
		CheckIn:         checkIn,
		CheckOut:        checkOut,
		NumberOfGuests:  req.NumberOfGuests,
		TotalPriceCents: total,
		Status:          model.BookingPending,
	}
	if err := h.Bookings.CreateTx(ctx, tx, b); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// Display form of the requester for the response body.
	userEmail := ""
	if u, err := h.Users.GetByID(ctx, userID); err == nil {
		userEmail = u.Email
	}

	// Best-effort event publish; failures are logged inside and ignored.
	_ = publisher.PublishBookingCreated(ctx, queue.BookingCreatedEvent{
		BookingID:       b.ID,
		ListingID:       listing.ID,
		ListingTitle:    listing.Title,
		City:            listing.City,
		UserID:          userID,
		CheckIn:         b.CheckIn.Format(bookingDateLayout),
		CheckOut:        b.CheckOut.Format(bookingDateLayout),
		NumberOfGuests:  b.NumberOfGuests,
		TotalPriceCents: b.TotalPriceCents,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, bookingResp{
		ID:              b.ID,
		User:            userEmail,
		Listing:         listing.Title,
		CheckIn:         b.CheckIn.Format(bookingDateLayout),
		CheckOut:        b.CheckOut.Format(bookingDateLayout),
		NumberOfGuests:  b.NumberOfGuests,
		TotalPriceCents: b.TotalPriceCents,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// ListMyBookings handles GET /v1/bookings and returns the requester's
// bookings, newest first.
func (h *BookingHandler) ListMyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetMyBooking handles GET /v1/bookings/:id.  Bookings made by other
// users are indistinguishable from missing ones.
func (h *BookingHandler) GetMyBooking(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	d, err := h.Bookings.GetByIDForUser(c.Request().Context(), id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, d)
}
