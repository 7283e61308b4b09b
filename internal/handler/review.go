package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/travel-listing-booking/internal/model"
	"github.com/iliyamo/travel-listing-booking/internal/repository"
)

// ReviewHandler creates reviews on behalf of authenticated users.  The
// author is always the requester from the JWT context.
type ReviewHandler struct {
	Listings *repository.ListingRepo
	Reviews  *repository.ReviewRepo
	Users    *repository.UserRepo
}

// NewReviewHandler constructs a ReviewHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewReviewHandler(listings *repository.ListingRepo, reviews *repository.ReviewRepo, users *repository.UserRepo) *ReviewHandler {
	if listings == nil || reviews == nil || users == nil {
		panic("nil repository passed to NewReviewHandler")
	}
	return &ReviewHandler{Listings: listings, Reviews: reviews, Users: users}
}

// createReviewReq is the client-writable review field set.  A blank
// comment is allowed; the rating must be between 1 and 5.
type createReviewReq struct {
	ListingID uint64 `json:"listing_id" validate:"required"`
	Rating    uint8  `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type reviewResp struct {
	ID        uint64 `json:"id"`
	User      string `json:"user"`
	Listing   string `json:"listing"`
	Rating    uint8  `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

// CreateReview handles POST /v1/reviews.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	listing, err := h.Listings.GetByID(ctx, req.ListingID)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "listing not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	rev := &model.Review{
		ListingID: listing.ID,
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := h.Reviews.Create(ctx, rev); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create review"})
	}

	userEmail := ""
	if u, err := h.Users.GetByID(ctx, userID); err == nil {
		userEmail = u.Email
	}
	return c.JSON(http.StatusCreated, reviewResp{
		ID:        rev.ID,
		User:      userEmail,
		Listing:   listing.Title,
		Rating:    rev.Rating,
		Comment:   rev.Comment,
		CreatedAt: rev.CreatedAt.UTC().Format(time.RFC3339),
	})
}
